// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"fmt"
	"strings"
)

// VectorWidth is the number of channels in every change group.
const VectorWidth = 3

// Channel indexes of the panner layout.
const (
	PannerPositionX = iota
	PannerPositionY
	PannerPositionZ
	PannerOrientationX
	PannerOrientationY
	PannerOrientationZ

	PannerChannels
)

// Channel indexes of the listener layout.
const (
	ListenerPositionX = iota
	ListenerPositionY
	ListenerPositionZ
	ListenerForwardX
	ListenerForwardY
	ListenerForwardZ
	ListenerUpX
	ListenerUpY
	ListenerUpZ

	ListenerChannels
)

// ListenerPrefix namespaces the listener parameters on a coupled panner.
const ListenerPrefix = "listener."

// Group names used by the call tables.
const (
	GroupPosition    = "position"
	GroupOrientation = "orientation"
	GroupForward     = "forward"
	GroupUp          = "up"
)

// Group is a run of VectorWidth consecutive channels that change together.
type Group struct {
	Name  string
	Start int
}

// Channels returns the channel range of g.
func (g Group) Channels() (from, to int) {
	return g.Start, g.Start + VectorWidth
}

// Layout is a validated table of channel index -> parameter name, split into
// change groups.
type Layout struct {
	names  []string
	groups []Group
	index  map[string]int
	group  map[string]int
}

var (
	pannerNames = []string{
		"positionX", "positionY", "positionZ",
		"orientationX", "orientationY", "orientationZ",
	}
	pannerGroups = []Group{
		{Name: GroupPosition, Start: PannerPositionX},
		{Name: GroupOrientation, Start: PannerOrientationX},
	}

	listenerNames = []string{
		"positionX", "positionY", "positionZ",
		"forwardX", "forwardY", "forwardZ",
		"upX", "upY", "upZ",
	}
	listenerGroups = []Group{
		{Name: GroupPosition, Start: ListenerPositionX},
		{Name: GroupForward, Start: ListenerForwardX},
		{Name: GroupUp, Start: ListenerUpX},
	}
)

// PannerLayout is the six channel position + orientation layout.
func PannerLayout() *Layout {
	l, err := NewLayout(pannerNames, pannerGroups)
	if err != nil {
		panic(err)
	}

	return l
}

// ListenerLayout is the nine channel position + forward + up layout.
func ListenerLayout() *Layout {
	l, err := NewLayout(listenerNames, listenerGroups)
	if err != nil {
		panic(err)
	}

	return l
}

// NewLayout validates names and groups: names are unique and not empty,
// groups are VectorWidth wide, uniquely named, and every channel belongs to
// exactly one group.
func NewLayout(names []string, groups []Group) (*Layout, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidLayout)
	}

	l := &Layout{
		names:  append([]string(nil), names...),
		groups: append([]Group(nil), groups...),
		index:  make(map[string]int, len(names)),
		group:  make(map[string]int, len(groups)),
	}

	for i, n := range names {
		if strings.TrimSpace(n) == "" {
			return nil, fmt.Errorf("%w: channel %d has no name", ErrInvalidLayout, i)
		}
		if prev, dup := l.index[n]; dup {
			return nil, fmt.Errorf("%w: %q used by channels %d and %d", ErrInvalidLayout, n, prev, i)
		}
		l.index[n] = i
	}

	owner := make([]int, len(names))
	for i := range owner {
		owner[i] = -1
	}
	for gi, g := range groups {
		if g.Name == "" {
			return nil, fmt.Errorf("%w: group %d has no name", ErrInvalidLayout, gi)
		}
		if _, dup := l.group[g.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate group %q", ErrInvalidLayout, g.Name)
		}
		l.group[g.Name] = gi

		from, to := g.Channels()
		if from < 0 || to > len(names) {
			return nil, fmt.Errorf("%w: group %q spans [%d,%d) outside %d channels", ErrInvalidLayout, g.Name, from, to, len(names))
		}
		for ch := from; ch < to; ch++ {
			if owner[ch] >= 0 {
				return nil, fmt.Errorf("%w: channel %d in groups %q and %q", ErrInvalidLayout, ch, groups[owner[ch]].Name, g.Name)
			}
			owner[ch] = gi
		}
	}
	for ch, gi := range owner {
		if gi < 0 {
			return nil, fmt.Errorf("%w: channel %d (%s) belongs to no group", ErrInvalidLayout, ch, names[ch])
		}
	}

	return l, nil
}

// Concat appends other after l, prefixing its names and group names.
func (l *Layout) Concat(other *Layout, prefix string) (*Layout, error) {
	names := append([]string(nil), l.names...)
	groups := append([]Group(nil), l.groups...)

	offset := len(l.names)
	for _, n := range other.names {
		names = append(names, prefix+n)
	}
	for _, g := range other.groups {
		groups = append(groups, Group{Name: prefix + g.Name, Start: g.Start + offset})
	}

	return NewLayout(names, groups)
}

// Channels is the number of channels.
func (l *Layout) Channels() int { return len(l.names) }

// Names returns the parameter names in channel order.
func (l *Layout) Names() []string { return append([]string(nil), l.names...) }

// Groups returns the change groups in channel order.
func (l *Layout) Groups() []Group { return append([]Group(nil), l.groups...) }

// Index returns the channel of a parameter name.
func (l *Layout) Index(name string) (int, error) {
	i, ok := l.index[name]
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}

	return i, nil
}

// GroupIndex returns the position of a named group in Groups.
func (l *Layout) GroupIndex(name string) (int, bool) {
	i, ok := l.group[name]
	return i, ok
}
