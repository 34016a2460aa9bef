// ABOUTME: Process resource readout for the mixer header
// ABOUTME: Samples heap size and CPU share from the Go runtime
package ui

import (
	"runtime"
	"runtime/metrics"
)

const (
	metricCPUTotal = "/cpu/classes/total:cpu-sec"
	metricCPUIdle  = "/cpu/classes/idle:cpu-sec"
)

// Usage is one resource sample
type Usage struct {
	MemMB      uint64
	CPUPercent float64 // share of all cores
}

// usageSampler turns cumulative runtime CPU counters into a percentage
// over the interval since the previous sample
type usageSampler struct {
	samples   []metrics.Sample
	lastBusy  float64
	lastTotal float64
}

func newUsageSampler() *usageSampler {
	return &usageSampler{
		samples: []metrics.Sample{
			{Name: metricCPUTotal},
			{Name: metricCPUIdle},
		},
	}
}

func (s *usageSampler) sample() Usage {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	metrics.Read(s.samples)
	var total, idle float64
	if s.samples[0].Value.Kind() == metrics.KindFloat64 {
		total = s.samples[0].Value.Float64()
	}
	if s.samples[1].Value.Kind() == metrics.KindFloat64 {
		idle = s.samples[1].Value.Float64()
	}
	busy := total - idle

	u := Usage{MemMB: m.Sys / 1024 / 1024}
	if dt := total - s.lastTotal; dt > 0 {
		u.CPUPercent = (busy - s.lastBusy) / dt * 100
	}
	s.lastBusy = busy
	s.lastTotal = total
	return u
}
