// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"fmt"

	"github.com/ik5/spatialparam/param"
)

// PannerNode is the surface shared by a bridged panner and a native panner
// that already has automatable parameters, so callers can use either.
type PannerNode interface {
	Param(name string) (*param.Slot, error)
	ParamNames() []string
	Attribute(name string) (any, error)
	SetAttribute(name string, value any) error
	Method(name string) (MethodFunc, error)
	ProcessBlock(t float64) error
	Close() error
}

// ParamProvider is implemented by native panners with their own
// automatable parameters.
type ParamProvider interface {
	Param(name string) (*param.Slot, error)
	ParamNames() []string
}

// MethodFunc is a native method looked up by name.
type MethodFunc func(args ...any) error

// Attributes forwarded verbatim to the native panner.
var Attributes = []string{
	"panningModel",
	"distanceModel",
	"refDistance",
	"maxDistance",
	"coneInnerAngle",
	"coneOuterAngle",
	"coneOuterGain",
}

// Methods forwarded verbatim to the native panner.
var Methods = []string{
	"setPosition",
	"setOrientation",
	"setVelocity",
	"connect",
	"disconnect",
}

var attributeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Attributes))
	for _, a := range Attributes {
		m[a] = struct{}{}
	}
	return m
}()

func isAttribute(name string) bool {
	_, ok := attributeSet[name]
	return ok
}

func nativeMethod(n NativePanner, name string) (MethodFunc, error) {
	vector := func(call func(x, y, z float64) error) MethodFunc {
		return func(args ...any) error {
			v, err := floats(name, args, 3)
			if err != nil {
				return err
			}
			return call(v[0], v[1], v[2])
		}
	}
	wire := func(call func(Node) error) MethodFunc {
		return func(args ...any) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: %s takes 1 argument, got %d", ErrBadArguments, name, len(args))
			}
			return call(args[0])
		}
	}

	switch name {
	case "setPosition":
		return vector(n.SetPosition), nil
	case "setOrientation":
		return vector(n.SetOrientation), nil
	case "setVelocity":
		return vector(n.SetVelocity), nil
	case "connect":
		return wire(n.Connect), nil
	case "disconnect":
		return wire(n.Disconnect), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

func floats(method string, args []any, want int) ([]float64, error) {
	if len(args) != want {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrBadArguments, method, want, len(args))
	}

	out := make([]float64, want)
	for i, a := range args {
		switch v := a.(type) {
		case float64:
			out[i] = v
		case float32:
			out[i] = float64(v)
		case int:
			out[i] = float64(v)
		default:
			return nil, fmt.Errorf("%w: %s argument %d is %T", ErrBadArguments, method, i, a)
		}
	}

	return out, nil
}

// HasNativeParams reports whether a trial native panner already exposes
// automatable parameters, in which case no bridge is needed.
func HasNativeParams(trial any) bool {
	p, ok := trial.(ParamProvider)
	if !ok {
		return false
	}
	_, err := p.Param("positionX")

	return err == nil
}

// Native wraps a native panner that already has automatable parameters.
type Native struct {
	NativePanner
	params ParamProvider
}

// NewNative fails with ErrNoNativeParameters unless HasNativeParams(n).
func NewNative(n NativePanner) (*Native, error) {
	if n == nil {
		return nil, ErrNilTarget
	}
	if !HasNativeParams(n) {
		return nil, ErrNoNativeParameters
	}

	return &Native{NativePanner: n, params: n.(ParamProvider)}, nil
}

func (n *Native) Param(name string) (*param.Slot, error) { return n.params.Param(name) }
func (n *Native) ParamNames() []string                   { return n.params.ParamNames() }

func (n *Native) Attribute(name string) (any, error) {
	if !isAttribute(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}

	return n.NativePanner.Attribute(name)
}

func (n *Native) SetAttribute(name string, value any) error {
	if !isAttribute(name) {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}

	return n.NativePanner.SetAttribute(name, value)
}

func (n *Native) Method(name string) (MethodFunc, error) { return nativeMethod(n.NativePanner, name) }

// ProcessBlock is a no-op: the native panner automates itself.
func (n *Native) ProcessBlock(float64) error { return nil }

func (n *Native) Close() error { return nil }
