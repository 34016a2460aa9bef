// ABOUTME: Binaural beat generator
// ABOUTME: Two sine oscillators offset by the beat frequency, one per ear
package generator

import (
	"math"
	"strconv"
	"sync/atomic"
)

const twoPi = 2 * math.Pi

// Binaural plays carrier on the left channel and carrier+beat on the right
type Binaural struct {
	controls
	carrier atomic.Uint64 // math.Float64bits, Hz
	beat    atomic.Uint64 // math.Float64bits, Hz

	phaseL float64
	phaseR float64
}

// NewBinaural creates a binaural generator. The default name describes the
// carrier and beat, e.g. "Binaural 400Hz/10Hz".
func NewBinaural(carrierHz, beatHz float64, opts ...Option) *Binaural {
	o := applyOptions(opts)
	g := &Binaural{}
	g.setup(nameOr(o, binauralName(carrierHz, beatHz)), o)
	g.carrier.Store(math.Float64bits(carrierHz))
	g.beat.Store(math.Float64bits(beatHz))
	return g
}

func binauralName(carrier, beat float64) string {
	return "Binaural " + formatHz(carrier) + "/" + formatHz(beat)
}

func formatHz(hz float64) string {
	return strconv.FormatFloat(hz, 'f', -1, 64) + "Hz"
}

// CarrierFreq returns the left-ear frequency in Hz
func (g *Binaural) CarrierFreq() float64 { return math.Float64frombits(g.carrier.Load()) }

// SetCarrierFreq changes the carrier; it applies from the next buffer
func (g *Binaural) SetCarrierFreq(hz float64) { g.carrier.Store(math.Float64bits(hz)) }

// BeatFreq returns the left/right frequency difference in Hz
func (g *Binaural) BeatFreq() float64 { return math.Float64frombits(g.beat.Load()) }

// SetBeatFreq changes the beat; it applies from the next buffer
func (g *Binaural) SetBeatFreq(hz float64) { g.beat.Store(math.Float64bits(hz)) }

// Increments returns the per-frame phase step of each ear at sampleRate
func (g *Binaural) Increments(sampleRate int) (left, right float64) {
	carrier := g.CarrierFreq()
	left = twoPi * carrier / float64(sampleRate)
	right = twoPi * (carrier + g.BeatFreq()) / float64(sampleRate)
	return left, right
}

// Phases returns the current oscillator phases, each in [0, 2π)
func (g *Binaural) Phases() (left, right float64) {
	return g.phaseL, g.phaseR
}

func (g *Binaural) FillBuffer(buf []float32, offset, count, sampleRate int) {
	if count <= 0 || sampleRate <= 0 {
		return
	}
	incL, incR := g.Increments(sampleRate)
	vol := g.Volume()

	for i := 0; i+1 < count; i += 2 {
		buf[offset+i] += float32(math.Sin(g.phaseL)) * vol
		buf[offset+i+1] += float32(math.Sin(g.phaseR)) * vol

		g.phaseL = wrapPhase(g.phaseL + incL)
		g.phaseR = wrapPhase(g.phaseR + incR)
	}
}

// wrapPhase folds p into [0, 2π)
func wrapPhase(p float64) float64 {
	if p >= twoPi {
		p -= twoPi
		if p >= twoPi {
			p = math.Mod(p, twoPi)
		}
	} else if p < 0 {
		p = math.Mod(p, twoPi) + twoPi
		if p >= twoPi {
			p = 0
		}
	}
	return p
}
