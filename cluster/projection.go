package cluster

import (
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Projector converts between geographic space and the screen pixel space of
// the current viewport, reports the viewport's geographic bounds, and
// measures real-world distance between two points. The engine depends on
// this interface only; the map widget may supply its own implementation.
type Projector interface {
	// Project converts a geographic point to viewport pixel coordinates.
	Project(p orb.Point) Pixel

	// Unproject converts viewport pixel coordinates back to a geographic
	// point.
	Unproject(px Pixel) orb.Point

	// Bounds returns the viewport's current geographic bounds.
	Bounds() orb.Bound

	// Distance returns the great-circle distance between two geographic
	// points, in meters.
	Distance(a, b orb.Point) float64
}

// DefaultTileSize is the tile edge used by the built-in projector.
const DefaultTileSize = 256

// MercatorProjector is a web-mercator Projector over a rectangular
// viewport described by a geographic center, an integer zoom level and a
// pixel size. Safe for concurrent use; SetViewport swaps the viewport
// atomically with respect to in-flight projections.
type MercatorProjector struct {
	mu       sync.RWMutex
	center   orb.Point
	zoom     int
	width    float64
	height   float64
	tileSize float64
}

var _ Projector = (*MercatorProjector)(nil)

// NewMercatorProjector returns a projector with a world-level viewport
// (zoom 0, one tile). Call SetViewport before real use.
func NewMercatorProjector() *MercatorProjector {
	return &MercatorProjector{
		center:   orb.Point{0, 0},
		zoom:     0,
		width:    DefaultTileSize,
		height:   DefaultTileSize,
		tileSize: DefaultTileSize,
	}
}

// SetViewport repositions the viewport. Width and height are in pixels;
// the center is clamped to the supported world range.
func (mp *MercatorProjector) SetViewport(center orb.Point, zoom, width, height int) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if zoom < 0 {
		zoom = 0
	}
	if width <= 0 {
		width = DefaultTileSize
	}
	if height <= 0 {
		height = DefaultTileSize
	}
	mp.center = ClampToWorld(center)
	mp.zoom = zoom
	mp.width = float64(width)
	mp.height = float64(height)
}

// worldSize returns the edge length of the full projected world in pixels
// at the current zoom. Callers must hold mu.
func (mp *MercatorProjector) worldSize() float64 {
	return mp.tileSize * math.Pow(2, float64(mp.zoom))
}

// absolute returns world-absolute pixel coordinates for a geographic
// point. Callers must hold mu.
func (mp *MercatorProjector) absolute(p orb.Point) Pixel {
	world := mp.worldSize()
	x := p.Lon()/360 + 0.5

	sin := math.Sin(p.Lat() * math.Pi / 180)
	y := 0.5 - 0.25*math.Log((1+sin)/(1-sin))/math.Pi
	if y < 0 {
		y = 0
	}
	if y > 1 {
		y = 1
	}
	return Pixel{X: x * world, Y: y * world}
}

// topLeft returns the world-absolute pixel of the viewport's top-left
// corner. Callers must hold mu.
func (mp *MercatorProjector) topLeft() Pixel {
	c := mp.absolute(mp.center)
	return Pixel{X: c.X - mp.width/2, Y: c.Y - mp.height/2}
}

func (mp *MercatorProjector) Project(p orb.Point) Pixel {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	abs := mp.absolute(p)
	tl := mp.topLeft()
	return Pixel{X: abs.X - tl.X, Y: abs.Y - tl.Y}
}

func (mp *MercatorProjector) Unproject(px Pixel) orb.Point {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return mp.unprojectLocked(px)
}

// unprojectLocked converts a viewport pixel to a geographic point.
// Callers must hold mu.
func (mp *MercatorProjector) unprojectLocked(px Pixel) orb.Point {
	world := mp.worldSize()
	tl := mp.topLeft()
	x := (px.X + tl.X) / world
	y := (px.Y + tl.Y) / world

	lng := x*360 - 180
	lat := math.Atan(math.Sinh(math.Pi*(1-2*y))) * 180 / math.Pi
	return ClampToWorld(orb.Point{lng, lat})
}

func (mp *MercatorProjector) Bounds() orb.Bound {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	nw := mp.unprojectLocked(Pixel{X: 0, Y: 0})
	se := mp.unprojectLocked(Pixel{X: mp.width, Y: mp.height})
	return orb.Bound{
		Min: orb.Point{nw.Lon(), se.Lat()},
		Max: orb.Point{se.Lon(), nw.Lat()},
	}
}

func (mp *MercatorProjector) Distance(a, b orb.Point) float64 {
	return geo.Distance(a, b)
}
