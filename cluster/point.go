package cluster

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// World range supported by the projection. Latitude is tighter than the
// usual web-mercator cutoff because grid regions near the poles degrade
// into slivers; input outside this range is clamped, never rejected.
const (
	MaxLongitude = 180.0
	MaxLatitude  = 74.0
)

// DefaultPosition is the fallback coordinate for marker records that carry
// no usable position. Missing input is not an error; it resolves here.
var DefaultPosition = orb.Point{116.404, 39.915}

// Pixel is a point in screen space. Y grows downward.
type Pixel struct {
	X float64
	Y float64
}

// Segment is a line between two geographic points, drawn from a cluster's
// centroid to a displaced member.
type Segment struct {
	From orb.Point `json:"from"`
	To   orb.Point `json:"to"`
}

// MarkerInput is one caller-supplied marker record. Position is a
// "lng,lat" string; anything unparseable resolves to DefaultPosition.
// Meta passes through the engine untouched for the rendering layer.
type MarkerInput struct {
	Key      string         `json:"key"`
	Position string         `json:"position,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// ClampToWorld clips a point to the supported world range.
func ClampToWorld(p orb.Point) orb.Point {
	return orb.Point{
		clamp(p.Lon(), -MaxLongitude, MaxLongitude),
		clamp(p.Lat(), -MaxLatitude, MaxLatitude),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParsePosition parses a "lng,lat" string. The second return value reports
// whether the input was usable; on false the returned point is
// DefaultPosition.
func ParsePosition(s string) (orb.Point, bool) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return DefaultPosition, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return DefaultPosition, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return DefaultPosition, false
	}
	return orb.Point{lng, lat}, true
}

func (in MarkerInput) resolvePosition() orb.Point {
	p, _ := ParsePosition(in.Position)
	return p
}
