package cluster

import (
	"fmt"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func testArena(points ...orb.Point) []Marker {
	arena := make([]Marker, len(points))
	for i, p := range points {
		arena[i] = Marker{key: fmt.Sprintf("m%d", i), home: p}
	}
	return arena
}

func TestClusterPushRejectsDuplicateMember(t *testing.T) {
	proj := newTestProjector(orb.Point{0, 0}, 8, 1024, 768)
	arena := testArena(orb.Point{0, 0}, orb.Point{0.01, 0.01})
	c := newCluster("c", arena, proj, DefaultGridSize)

	require.True(t, c.Push(0))
	require.False(t, c.Push(0))
	require.Equal(t, 1, c.Size())

	centroid := c.Centroid()
	require.False(t, c.Push(0))
	require.Equal(t, centroid, c.Centroid(), "rejected push must not mutate")
}

func TestClusterCentroidRunningMean(t *testing.T) {
	proj := newTestProjector(orb.Point{0, 0}, 8, 1024, 768)
	arena := testArena(orb.Point{0, 0}, orb.Point{0.02, 0}, orb.Point{0.01, 0.03})
	c := newCluster("c", arena, proj, DefaultGridSize)

	c.Push(0)
	require.Equal(t, arena[0].home, c.Centroid(), "first member becomes the centroid")

	c.Push(1)
	c.Push(2)
	require.InDelta(t, 0.01, c.Centroid().Lon(), 1e-12)
	require.InDelta(t, 0.01, c.Centroid().Lat(), 1e-12)
}

func TestClusterCentroidOrderIndependent(t *testing.T) {
	proj := newTestProjector(orb.Point{0, 0}, 8, 1024, 768)
	points := []orb.Point{{0, 0}, {0.02, 0.01}, {-0.01, 0.03}, {0.04, -0.02}, {0.005, 0.015}}

	orders := [][]int{
		{0, 1, 2, 3, 4},
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
	}

	var centroids []orb.Point
	for _, order := range orders {
		arena := testArena(points...)
		c := newCluster("c", arena, proj, DefaultGridSize)
		for _, id := range order {
			require.True(t, c.Push(id))
		}
		centroids = append(centroids, c.Centroid())
	}

	for _, got := range centroids[1:] {
		require.InDelta(t, centroids[0].Lon(), got.Lon(), 1e-12)
		require.InDelta(t, centroids[0].Lat(), got.Lat(), 1e-12)
	}
}

func TestSingletonClusterHasNoDisplacement(t *testing.T) {
	proj := newTestProjector(orb.Point{0, 0}, 8, 1024, 768)
	arena := testArena(orb.Point{1, 2})
	c := newCluster("c", arena, proj, DefaultGridSize)

	c.Push(0)
	require.False(t, c.IsReal())
	require.Empty(t, c.Lines())
	require.Equal(t, arena[0].home, arena[0].FinalPosition())
}

func TestCircularLayout(t *testing.T) {
	const gridSize = 60.0
	proj := newTestProjector(orb.Point{0, 0}, 10, 1024, 768)

	for _, n := range []int{2, 3, 4, 7} {
		points := make([]orb.Point, n)
		for i := range points {
			points[i] = orb.Point{0.0001 * float64(i), 0}
		}
		arena := testArena(points...)
		c := newCluster("c", arena, proj, gridSize)
		for i := range points {
			require.True(t, c.Push(i))
		}

		require.True(t, c.IsReal())
		require.Len(t, c.Lines(), n, "one indicator line per member")

		center := proj.Project(c.Centroid())
		step := 2 * math.Pi / float64(n)
		for i := range points {
			px := proj.Project(arena[i].FinalPosition())
			dx := px.X - center.X
			dy := px.Y - center.Y

			dist := math.Hypot(dx, dy)
			require.InDelta(t, gridSize, dist, 0.5,
				"member %d of %d sits on the burst circle", i, n)

			// Counter-clockwise from angle zero; screen Y points down.
			theta := math.Atan2(-dy, dx)
			if theta < 0 {
				theta += 2 * math.Pi
			}
			want := step * float64(i)
			require.InDelta(t, want, theta, 0.01,
				"member %d of %d angular position", i, n)
		}
	}
}

func TestLayoutShiftsEarlierMembers(t *testing.T) {
	proj := newTestProjector(orb.Point{0, 0}, 10, 1024, 768)
	arena := testArena(orb.Point{0, 0}, orb.Point{0.0001, 0}, orb.Point{0, 0.0001})
	c := newCluster("c", arena, proj, DefaultGridSize)

	c.Push(0)
	c.Push(1)
	afterTwo := arena[0].FinalPosition()

	c.Push(2)
	afterThree := arena[0].FinalPosition()
	require.NotEqual(t, afterTwo, afterThree,
		"growing the cluster re-lays-out every member")
}

func TestClusterContainsHome(t *testing.T) {
	proj := newTestProjector(orb.Point{0, 0}, 8, 1024, 768)
	near := orb.Point{0.001, 0.001}
	far := orb.Point{30, 30}
	arena := testArena(orb.Point{0, 0}, near, far)
	c := newCluster("c", arena, proj, DefaultGridSize)
	c.Push(0)

	require.True(t, c.ContainsHome(&arena[1]))
	require.False(t, c.ContainsHome(&arena[2]))
}
