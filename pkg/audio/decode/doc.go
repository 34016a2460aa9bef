// ABOUTME: Audio file decoders for looped ambience
// ABOUTME: Decodes MP3, WAV, Ogg Vorbis and raw PCM files to float clips
// Package decode loads whole audio files into memory as float clips.
//
// Supports: MP3 (go-mp3), WAV (go-audio/wav), Ogg Vorbis (oggvorbis) and
// headerless 16-bit little-endian PCM.
//
// All decoders produce interleaved stereo float32 samples in [-1, 1] at the
// file's own sample rate. Mono files are duplicated to both channels and any
// channels past the second are dropped.
//
// Example:
//
//	clip, err := decode.File("rain.ogg")
//	fmt.Println(clip.SampleRate, clip.Frames())
package decode
