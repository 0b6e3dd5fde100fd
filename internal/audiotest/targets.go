// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"sync"
)

// Call is one recorded imperative call on a fake positional target.
type Call struct {
	Method string
	Args   []float64
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Method, c.Args)
}

// Recorder collects calls in order and can be told to fail a method.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	fail  map[string]error
}

// FailOn makes every later call to method return err. A nil err clears it.
func (r *Recorder) FailOn(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail == nil {
		r.fail = make(map[string]error)
	}
	if err == nil {
		delete(r.fail, method)
		return
	}
	r.fail[method] = err
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Call, len(r.calls))
	copy(out, r.calls)

	return out
}

// Count returns how many times method was called successfully.
func (r *Recorder) Count(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, c := range r.calls {
		if c.Method == method {
			n++
		}
	}

	return n
}

// Reset forgets recorded calls but keeps failure settings.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = nil
}

func (r *Recorder) record(method string, args ...float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.fail[method]; ok {
		return err
	}
	r.calls = append(r.calls, Call{Method: method, Args: args})

	return nil
}

// Listener is a fake native listener.
type Listener struct {
	Recorder
}

func (l *Listener) SetPosition(x, y, z float64) error {
	return l.record("SetPosition", x, y, z)
}

func (l *Listener) SetOrientation(fx, fy, fz, ux, uy, uz float64) error {
	return l.record("SetOrientation", fx, fy, fz, ux, uy, uz)
}

// Panner is a fake native panner with attribute storage and graph wiring.
type Panner struct {
	Recorder

	attrMu     sync.Mutex
	attributes map[string]any
	Connected  []any
}

func (p *Panner) SetPosition(x, y, z float64) error {
	return p.record("SetPosition", x, y, z)
}

func (p *Panner) SetOrientation(x, y, z float64) error {
	return p.record("SetOrientation", x, y, z)
}

func (p *Panner) SetVelocity(x, y, z float64) error {
	return p.record("SetVelocity", x, y, z)
}

func (p *Panner) Connect(dst any) error {
	if err := p.record("Connect"); err != nil {
		return err
	}
	p.attrMu.Lock()
	defer p.attrMu.Unlock()
	p.Connected = append(p.Connected, dst)

	return nil
}

func (p *Panner) Disconnect(dst any) error {
	if err := p.record("Disconnect"); err != nil {
		return err
	}
	p.attrMu.Lock()
	defer p.attrMu.Unlock()
	for i, c := range p.Connected {
		if c == dst {
			p.Connected = append(p.Connected[:i], p.Connected[i+1:]...)
			break
		}
	}

	return nil
}

func (p *Panner) Attribute(name string) (any, error) {
	p.attrMu.Lock()
	defer p.attrMu.Unlock()

	return p.attributes[name], nil
}

func (p *Panner) SetAttribute(name string, value any) error {
	p.attrMu.Lock()
	defer p.attrMu.Unlock()

	if p.attributes == nil {
		p.attributes = make(map[string]any)
	}
	p.attributes[name] = value

	return nil
}
