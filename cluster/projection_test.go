package cluster

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func newTestProjector(center orb.Point, zoom, width, height int) *MercatorProjector {
	proj := NewMercatorProjector()
	proj.SetViewport(center, zoom, width, height)
	return proj
}

func TestProjectionRoundTrip(t *testing.T) {
	proj := newTestProjector(orb.Point{10, 20}, 8, 1024, 768)

	cases := []orb.Point{
		{0, 0},
		{116.404, 39.915},
		{-122.42, 37.77},
		{179.9, 73.9},
		{-179.9, -73.9},
	}
	for _, p := range cases {
		px := proj.Project(p)
		back := proj.Unproject(px)
		require.InDelta(t, p.Lon(), back.Lon(), 1e-6, "lng round trip for %v", p)
		require.InDelta(t, p.Lat(), back.Lat(), 1e-6, "lat round trip for %v", p)
	}
}

func TestProjectionCenterMapsToViewportMiddle(t *testing.T) {
	center := orb.Point{30, -15}
	proj := newTestProjector(center, 10, 800, 600)

	px := proj.Project(center)
	require.InDelta(t, 400, px.X, 1e-9)
	require.InDelta(t, 300, px.Y, 1e-9)
}

func TestProjectionPixelAxes(t *testing.T) {
	proj := newTestProjector(orb.Point{0, 0}, 6, 512, 512)

	east := proj.Project(orb.Point{10, 0})
	west := proj.Project(orb.Point{-10, 0})
	require.Greater(t, east.X, west.X, "east must be right of west")

	north := proj.Project(orb.Point{0, 10})
	south := proj.Project(orb.Point{0, -10})
	require.Less(t, north.Y, south.Y, "screen Y grows downward")
}

func TestProjectorBounds(t *testing.T) {
	proj := newTestProjector(orb.Point{0, 0}, 4, 512, 512)

	b := proj.Bounds()
	require.Less(t, b.Min.Lon(), b.Max.Lon())
	require.Less(t, b.Min.Lat(), b.Max.Lat())
	require.True(t, b.Contains(orb.Point{0, 0}))

	// 512px of a 4096px world is 45 degrees of longitude.
	require.InDelta(t, -22.5, b.Min.Lon(), 1e-6)
	require.InDelta(t, 22.5, b.Max.Lon(), 1e-6)
}

func TestSetViewportClampsCenter(t *testing.T) {
	proj := NewMercatorProjector()
	proj.SetViewport(orb.Point{500, 88}, 3, 256, 256)

	b := proj.Bounds()
	require.LessOrEqual(t, b.Max.Lat(), MaxLatitude)
	require.LessOrEqual(t, b.Max.Lon(), MaxLongitude)
}

func TestDistanceIsMetric(t *testing.T) {
	proj := NewMercatorProjector()

	a := orb.Point{116.404, 39.915}
	b := orb.Point{116.405, 39.915}
	require.Zero(t, proj.Distance(a, a))
	require.Greater(t, proj.Distance(a, b), 0.0)
	require.InDelta(t, proj.Distance(a, b), proj.Distance(b, a), 1e-9)
}
