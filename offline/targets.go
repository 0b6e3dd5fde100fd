// SPDX-License-Identifier: EPL-2.0

package offline

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// LogListener is a native listener that logs every call at Info level.
type LogListener struct {
	Log logrus.FieldLogger
}

func (l *LogListener) SetPosition(x, y, z float64) error {
	l.Log.WithFields(logrus.Fields{
		"target": "listener",
		"x":      x,
		"y":      y,
		"z":      z,
	}).Info("setPosition")

	return nil
}

func (l *LogListener) SetOrientation(fx, fy, fz, ux, uy, uz float64) error {
	l.Log.WithFields(logrus.Fields{
		"target":  "listener",
		"forward": []float64{fx, fy, fz},
		"up":      []float64{ux, uy, uz},
	}).Info("setOrientation")

	return nil
}

// LogPanner is a native panner that logs every call and stores attributes.
type LogPanner struct {
	Name string
	Log  logrus.FieldLogger

	mu    sync.Mutex
	attrs map[string]any
}

func (p *LogPanner) vector(method string, x, y, z float64) error {
	p.Log.WithFields(logrus.Fields{
		"target": p.Name,
		"x":      x,
		"y":      y,
		"z":      z,
	}).Info(method)

	return nil
}

func (p *LogPanner) SetPosition(x, y, z float64) error {
	return p.vector("setPosition", x, y, z)
}

func (p *LogPanner) SetOrientation(x, y, z float64) error {
	return p.vector("setOrientation", x, y, z)
}

func (p *LogPanner) SetVelocity(x, y, z float64) error {
	return p.vector("setVelocity", x, y, z)
}

func (p *LogPanner) Connect(dst any) error {
	p.Log.WithFields(logrus.Fields{"target": p.Name, "dst": dst}).Info("connect")
	return nil
}

func (p *LogPanner) Disconnect(dst any) error {
	p.Log.WithFields(logrus.Fields{"target": p.Name, "dst": dst}).Info("disconnect")
	return nil
}

func (p *LogPanner) Attribute(name string) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.attrs[name], nil
}

func (p *LogPanner) SetAttribute(name string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.attrs == nil {
		p.attrs = make(map[string]any)
	}
	p.attrs[name] = value

	return nil
}
