// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the root of every setup-time error. All errors below
// except ErrClosed and ErrBadArguments satisfy errors.Is(err, ErrConfiguration).
var ErrConfiguration = errors.New("bridge configuration error")

var (
	ErrUnknownParameter   = fmt.Errorf("%w: unknown parameter", ErrConfiguration)
	ErrInvalidBlockSize   = fmt.Errorf("%w: block size must be positive", ErrConfiguration)
	ErrInvalidTolerance   = fmt.Errorf("%w: tolerance must be finite and not negative", ErrConfiguration)
	ErrInvalidSampleRate  = fmt.Errorf("%w: sample rate must be positive", ErrConfiguration)
	ErrInvalidLayout      = fmt.Errorf("%w: invalid channel layout", ErrConfiguration)
	ErrUnknownAttribute   = fmt.Errorf("%w: unknown attribute", ErrConfiguration)
	ErrUnknownMethod      = fmt.Errorf("%w: unknown method", ErrConfiguration)
	ErrNilContext         = fmt.Errorf("%w: nil audio context", ErrConfiguration)
	ErrNilTarget          = fmt.Errorf("%w: nil native target", ErrConfiguration)
	ErrBlockSizeMismatch  = fmt.Errorf("%w: block size differs from the context listener", ErrConfiguration)
	ErrNoNativeParameters = fmt.Errorf("%w: native panner has no automatable parameters", ErrConfiguration)
	ErrContextReleased    = fmt.Errorf("%w: audio context was released", ErrConfiguration)
)

var (
	ErrClosed       = errors.New("bridge is closed")
	ErrBadArguments = errors.New("bad method arguments")
)
