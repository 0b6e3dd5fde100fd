// SPDX-License-Identifier: EPL-2.0

// Package audio holds the pull-based Source stream that modulation inputs
// and control signals share, plus the adapters that make an arbitrary
// source fit a parameter slot.
//
// Conform is the usual entry point: it inserts a cubic Resampler when the
// source rate differs from the context rate and a MonoMixer when the source
// has more than one channel.
//
//	src := audio.Conform(curve, 48000)
//	block := make([]float32, 512)
//	n, err := audio.ReadFull(src, block)
//
// ReadFull keeps reading until the block is full, returning
// io.ErrUnexpectedEOF for a short final block.
//
// A Registry maps file extensions to Decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, err := reg.ForPath("sweep.WAV")
package audio
