// SPDX-License-Identifier: EPL-2.0

package param

type eventKind int

const (
	eventSet eventKind = iota
	eventRamp
)

type event struct {
	kind  eventKind
	value float64
	time  float64
}

// timeline is an ordered list of automation events.
type timeline struct {
	events []event
}

func (tl *timeline) last() (event, bool) {
	if len(tl.events) == 0 {
		return event{}, false
	}

	return tl.events[len(tl.events)-1], true
}

func (tl *timeline) cancel(t float64) {
	for i, e := range tl.events {
		if e.time >= t {
			tl.events = tl.events[:i]
			return
		}
	}
}

// valueAt evaluates the timeline at t. base is the value before any event.
func (tl *timeline) valueAt(t, base float64) float64 {
	prevTime, prevValue := 0.0, base

	for _, e := range tl.events {
		if e.time <= t {
			prevTime, prevValue = e.time, e.value
			continue
		}

		if e.kind == eventRamp {
			span := e.time - prevTime
			if span <= 0 {
				return e.value
			}
			return prevValue + (e.value-prevValue)*(t-prevTime)/span
		}

		return prevValue
	}

	return prevValue
}
