// SPDX-License-Identifier: EPL-2.0

// Package spatialparam makes the position and orientation of spatial audio
// panners and listeners automatable.
//
// Hosts whose native panner already exposes automatable parameters get it
// back unchanged; every other native panner is wrapped in a bridge that
// samples parameter slots once per block and issues the imperative calls
// the native object understands.
//
//	reg, _ := bridge.NewRegistry()
//	node, _ := spatialparam.CreatePanner(reg, ctx, native)
//
//	x, _ := node.Param("positionX")
//	x.LinearRampToValueAtTime(5, 2)
//
// Parameter slots can also be driven by audio-rate sources. Curves stored
// as wav, mp3, ogg or aiff files are opened with OpenCurve:
//
//	curve, _ := spatialparam.OpenCurve(spatialparam.Decoders(), "sweep.ogg")
//	x.Connect(curve, 10)
//
// # Packages
//
//   - bridge: slots, encoders, samplers, change detection, call tables and
//     the panner and listener bridges.
//   - param: automatable parameter slots.
//   - audio: the Source stream interface, resampling and down-mixing.
//   - offline: a block-driven host context for rendering without a device.
//   - formats/...: decoders, and a WAV recorder for control signals.
package spatialparam
