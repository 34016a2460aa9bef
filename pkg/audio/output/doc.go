// ABOUTME: Audio output package for playing engine buffers
// ABOUTME: Provides the Sink interface and its device, file and simulated backends
// Package output provides the device sinks the engine submits buffers to.
//
// A Sink behaves like a classic wave-out device: the engine owns a fixed set
// of numbered slots, submits each filled slot, and later polls IsComplete to
// learn when the device has finished with it. The device thread only flips a
// per-slot completion flag; it never calls back into the engine.
//
// Backends:
//   - Oto: default, pure Go on most platforms (ebitengine/oto)
//   - Malgo: miniaudio via cgo (gen2brain/malgo)
//   - PortAudio: build with -tags portaudio (gordonklaus/portaudio)
//   - WAVFile: writes every submitted slot to a WAV file
//   - Simulated: in-memory device with a virtual clock, for tests
//   - null: a Simulated device on the wall clock that discards audio
//
// Example:
//
//	sink, err := output.New("oto")
//	err = sink.Open(audio.DefaultFormat(44100), 4, 4410)
package output
