// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files through github.com/hajimehoshi/go-mp3.
//
// go-mp3 always produces 16-bit little-endian stereo, so every decoded
// source has two channels. Mono modulation curves come back with both
// channels equal; audio.Conform mixes them down.
package mp3
