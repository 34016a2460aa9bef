// ABOUTME: Audio encoder package for writing rendered PCM
// ABOUTME: Provides a streaming 16-bit WAV writer
// Package encode writes engine output to files.
//
// WAVWriter accepts interleaved int16 buffers as they are produced and
// finalises the RIFF header on Close.
//
// Example:
//
//	f, _ := os.Create("out.wav")
//	w, err := encode.NewWAVWriter(f, audio.DefaultFormat(44100))
//	err = w.Write(pcm)
//	err = w.Close()
package encode
