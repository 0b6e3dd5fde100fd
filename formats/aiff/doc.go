// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16, 24 and 32 bit PCM AIFF files through
// github.com/go-audio/aiff, for use as modulation curves.
//
//	f, _ := os.Open("sweep.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//
// Samples are normalized to [-1, 1). Non-seekable readers are buffered in
// memory since the underlying decoder needs to seek.
package aiff
