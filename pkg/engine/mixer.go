// ABOUTME: Buffer mixing and PCM conversion
// ABOUTME: Sums active generators, applies master gain, clips and converts
package engine

import (
	"github.com/harperreed/noisegen-go/pkg/audio"
	"github.com/harperreed/noisegen-go/pkg/audio/generator"
)

// mix adds every active generator into buf, in order. buf is not cleared.
func mix(buf []float32, sampleRate int, gens []generator.Generator) {
	for _, g := range gens {
		if !g.Enabled() || g.Volume() <= 0 {
			continue
		}
		g.FillBuffer(buf, 0, len(buf), sampleRate)
	}
}

// convert scales buf by master, clips to [-1, 1] and writes 16-bit PCM.
// Non-finite values become silence.
func convert(dst []int16, buf []float32, master float32) {
	for i, v := range buf {
		dst[i] = audio.FloatToInt16(v * master)
	}
}

// render produces one buffer of PCM into dst using the engine's accumulator
func (e *Engine) render(dst []int16) {
	clear(e.mix)
	if e.MasterEnabled() {
		mix(e.mix, e.cfg.SampleRate, e.gens)
	}
	convert(dst, e.mix, e.MasterVolume())
}
