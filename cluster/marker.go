package cluster

import "github.com/paulmach/orb"

// Marker is one geographic point of interest. The home position is fixed
// at construction; the displaced position is written only by the owning
// cluster's layout step and cleared whenever the marker stands alone.
type Marker struct {
	key       string
	home      orb.Point
	displaced *orb.Point
	meta      map[string]any
}

func newMarker(in MarkerInput) Marker {
	return Marker{
		key:  in.Key,
		home: in.resolvePosition(),
		meta: in.Meta,
	}
}

// Key returns the marker's stable identifier.
func (m *Marker) Key() string { return m.key }

// Home returns the marker's immutable geographic position.
func (m *Marker) Home() orb.Point { return m.home }

// Meta returns the opaque caller-supplied metadata.
func (m *Marker) Meta() map[string]any { return m.meta }

// FinalPosition returns the displaced position when the marker has been
// burst onto a cluster circle, and the home position otherwise.
func (m *Marker) FinalPosition() orb.Point {
	if m.displaced != nil {
		return *m.displaced
	}
	return m.home
}
