// SPDX-License-Identifier: EPL-2.0

// Package offline is a block-driven host for bridges without a live audio
// device. A Context has a fixed sample rate and a native listener, and
// renders blocks by calling every registered processor in registration
// order with the block start time frame/sampleRate.
package offline
