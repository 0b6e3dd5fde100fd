// SPDX-License-Identifier: EPL-2.0

// Package wav decodes PCM WAV files into audio.Source streams and records
// any audio.Source, such as a panner's control signal, to a WAV file.
//
// Both directions go through github.com/go-audio/wav.
//
//	f, _ := os.Open("curve.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
//	out, _ := os.Create("control.wav")
//	rec := wav.NewRecorder(wav.WithFullScale(10))
//	frames, err := rec.Record(out, panner.Signal(), 48000)
//
// Decoded samples are normalized to [-1, 1) whatever the bit depth.
package wav
