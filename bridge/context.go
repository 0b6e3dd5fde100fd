// SPDX-License-Identifier: EPL-2.0

package bridge

// Node is an opaque node of the host audio graph, used only for
// connect / disconnect passthrough.
type Node = any

// AudioContext is the host audio context bridges are created against. It
// is used as a map key, so implementations must be comparable (pointers).
type AudioContext interface {
	SampleRate() int
	Listener() ListenerTarget
}

// ListenerTarget is the context's native spatial listener. It only accepts
// instantaneous calls; orientation takes forward and up together.
type ListenerTarget interface {
	SetPosition(x, y, z float64) error
	SetOrientation(fx, fy, fz, ux, uy, uz float64) error
}

// PannerTarget is the imperative surface of a native spatializer.
type PannerTarget interface {
	SetPosition(x, y, z float64) error
	SetOrientation(x, y, z float64) error
}

// NativePanner is everything a bridged panner forwards to the native
// spatializer.
type NativePanner interface {
	PannerTarget
	SetVelocity(x, y, z float64) error
	Connect(dst Node) error
	Disconnect(dst Node) error
	Attribute(name string) (any, error)
	SetAttribute(name string, value any) error
}
