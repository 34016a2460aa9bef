// ABOUTME: Noise colour generators
// ABOUTME: White, pink (three-pole IIR) and brown (leaky integrator) noise
package generator

import "math/rand/v2"

// White produces uniform white noise, identical on both channels
type White struct {
	controls
	rng *rand.Rand
}

// NewWhite creates a white noise generator
func NewWhite(opts ...Option) *White {
	o := applyOptions(opts)
	g := &White{rng: newRand(o)}
	g.setup(nameOr(o, "White Noise"), o)
	return g
}

func (g *White) FillBuffer(buf []float32, offset, count, sampleRate int) {
	vol := g.Volume()
	for i := 0; i+1 < count; i += 2 {
		v := float32(white(g.rng)) * vol
		buf[offset+i] += v
		buf[offset+i+1] += v
	}
}

// Pink approximates 1/f noise with three first-order poles
type Pink struct {
	controls
	rng        *rand.Rand
	b0, b1, b2 float64
}

// NewPink creates a pink noise generator
func NewPink(opts ...Option) *Pink {
	o := applyOptions(opts)
	g := &Pink{rng: newRand(o)}
	g.setup(nameOr(o, "Pink Noise"), o)
	return g
}

func (g *Pink) FillBuffer(buf []float32, offset, count, sampleRate int) {
	vol := g.Volume()
	for i := 0; i+1 < count; i += 2 {
		w := white(g.rng)
		g.b0 = 0.99886*g.b0 + w*0.0555179
		g.b1 = 0.99332*g.b1 + w*0.0750759
		g.b2 = 0.96900*g.b2 + w*0.1538520

		// 0.5 keeps the summed poles roughly inside [-1, 1]
		v := float32((g.b0+g.b1+g.b2)*0.5) * vol
		buf[offset+i] += v
		buf[offset+i+1] += v
	}
}

// Brown is integrated white noise with a small leak so it cannot drift off
type Brown struct {
	controls
	rng  *rand.Rand
	last float64
}

// brownGain compensates for the integrator's low output level
const brownGain = 3.5

// NewBrown creates a brown noise generator
func NewBrown(opts ...Option) *Brown {
	o := applyOptions(opts)
	g := &Brown{rng: newRand(o)}
	g.setup(nameOr(o, "Brown Noise"), o)
	return g
}

func (g *Brown) FillBuffer(buf []float32, offset, count, sampleRate int) {
	vol := g.Volume()
	for i := 0; i+1 < count; i += 2 {
		w := white(g.rng)
		g.last = (g.last + 0.02*w) / 1.02

		v := float32(g.last*brownGain) * vol
		buf[offset+i] += v
		buf[offset+i+1] += v
	}
}
