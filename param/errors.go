// SPDX-License-Identifier: EPL-2.0

package param

import "errors"

var (
	ErrNonFinite    = errors.New("automation value or time is not finite")
	ErrNegativeTime = errors.New("automation time is negative")
	ErrEventOrder   = errors.New("automation event scheduled before the last event")
	ErrNotConnected = errors.New("source is not connected to this slot")
	ErrNilSource    = errors.New("nil modulation source")
)
