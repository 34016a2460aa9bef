// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts decoded loop material to the engine's sample rate
// Package resample provides audio sample rate conversion.
//
// Uses linear interpolation for converting between sample rates.
// Handles both upsampling and downsampling of interleaved float samples.
//
// Example:
//
//	r := resample.New(48000, 44100, 2)
//	out := make([]float32, r.OutputSamplesNeeded(len(in)))
//	n := r.Resample(in, out)
package resample
