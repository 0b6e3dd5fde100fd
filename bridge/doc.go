// SPDX-License-Identifier: EPL-2.0

// Package bridge makes the position and orientation of a native spatial
// panner, and of its context's listener, automatable.
//
// Each bridged parameter is a param.Slot. An Encoder renders the slots as a
// multi-channel control signal, a Sampler reads frame 0 of it once per
// block, a Detector finds the three-component groups that changed, and a
// Sink forwards them to the native target through a fixed call table:
//
//	reg, _ := bridge.NewRegistry()
//	f, _ := bridge.NewFactory(reg)
//	p, _ := f.NewPanner(ctx, native)
//
//	x, _ := p.Param("positionX")
//	x.LinearRampToValueAtTime(10, 2)
//
//	// from the host's block callback
//	p.ProcessBlock(t)
//
// With listener coupling every panner also carries the listener's nine
// parameters under the "listener." prefix. The context's Listener is shared
// through the Registry and applies at most one snapshot per block time.
package bridge
