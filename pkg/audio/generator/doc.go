// ABOUTME: Signal generators for the noisegen mixer
// ABOUTME: Noise colours, binaural beats, and looped audio files
// Package generator provides the signal sources the engine mixes.
//
// Every source implements Generator. FillBuffer is additive: it adds its
// contribution to an interleaved stereo float buffer that may already hold
// other sources, so mixing order never changes the result beyond float
// rounding.
//
// Enabled and Volume are stored atomically. A UI may change them while the
// engine is filling; the new value is picked up by the next buffer.
//
// Example:
//
//	pink := generator.NewPink(generator.WithVolume(0.3))
//	buf := make([]float32, 2*441)
//	pink.FillBuffer(buf, 0, len(buf), 44100)
package generator
