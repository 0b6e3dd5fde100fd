// SPDX-License-Identifier: EPL-2.0

// Package param holds automatable scalar slots.
//
// A Slot is one component of a positional parameter set (positionX,
// forwardY, ...). Its value for a processing block is the sum of:
//   - the automation timeline evaluated at the block start time, falling
//     back to the plain value set with SetValue;
//   - every connected modulation source, read one block at a time, of which
//     the first frame of the block is used.
//
// Values are held for the whole block; nothing is interpolated inside a
// block.
//
// # Automation
//
//	s := param.NewSlot("positionX", 0)
//	s.SetValue(1)
//	_ = s.SetValueAtTime(2, 0.5)
//	_ = s.LinearRampToValueAtTime(10, 1.5)
//	s.ValueAt(1.0) // 6
//
// Events must be scheduled in non-decreasing time order.
//
// # Modulation
//
// Any audio.Source can drive a slot. Sources are down-mixed to mono and
// resampled to the encoder's rate on first use:
//
//	lfo, _ := wav.Decoder{}.Decode(f)
//	_ = s.Connect(lfo, 5) // +-5 units around the automated value
//
// A source that ends or fails is disconnected automatically.
//
// # Concurrency
//
// The plain value is stored atomically; the timeline and inputs are guarded
// by a mutex. Writers on any goroutine may race the block callback safely.
package param
