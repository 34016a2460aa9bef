// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and the float to 16-bit PCM conversion used by the engine
// Package audio provides fundamental audio types and utilities for the noisegen mixer.
//
// This package defines core types used throughout the library:
//   - Format: Describes the device stream format (sample rate, channels, bit depth)
//
// It also provides utilities for converting between sample representations:
//   - float32 [-1,1] → int16 with clipping and rounding
//   - int16 ↔ little-endian bytes
//   - int16 → float32 for decoded loop material
//
// Example:
//
//	format := audio.DefaultFormat(44100)
//	frames := format.FramesFor(50 * time.Millisecond)
//	pcm := audio.FloatToInt16(0.25)
package audio
