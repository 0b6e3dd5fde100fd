// SPDX-License-Identifier: EPL-2.0

package offline

import "errors"

var (
	ErrClosed            = errors.New("offline context is closed")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidBlockSize  = errors.New("block size must be positive")
	ErrNilListener       = errors.New("nil listener target")
	ErrNilProcessor      = errors.New("nil processor")
)
