package cluster

import (
	"math"

	"github.com/paulmach/orb"
)

// Cluster is a mutable aggregate of one or more markers built during a
// single relayout pass. It holds member indices into the engine's marker
// arena plus copies of the configuration it needs; it never references the
// engine itself. Clusters are discarded wholesale on the next relayout.
type Cluster struct {
	name       string
	arena      []Marker
	members    []int
	centroid   orb.Point
	gridBounds orb.Bound
	lines      []Segment
	proj       Projector
	gridSize   float64
}

func newCluster(name string, arena []Marker, proj Projector, gridSize float64) *Cluster {
	return &Cluster{
		name:     name,
		arena:    arena,
		proj:     proj,
		gridSize: gridSize,
	}
}

// Name returns the diagnostic label assigned at creation. It plays no part
// in clustering decisions.
func (c *Cluster) Name() string { return c.name }

// Centroid returns the running average position of all members.
func (c *Cluster) Centroid() orb.Point { return c.centroid }

// Size returns the member count.
func (c *Cluster) Size() int { return len(c.members) }

// IsReal reports whether the cluster aggregates more than one marker.
func (c *Cluster) IsReal() bool { return len(c.members) > 1 }

// Lines returns the indicator segments from the centroid to each displaced
// member. Empty for singleton clusters.
func (c *Cluster) Lines() []Segment { return c.lines }

// ContainsHome reports whether a marker's home position lies inside this
// cluster's current pixel grid region. Used as the eligibility pre-filter
// before distance comparison.
func (c *Cluster) ContainsHome(m *Marker) bool {
	return c.gridBounds.Contains(m.home)
}

// Push adds the marker with the given arena index. It returns false and
// leaves the cluster untouched when the marker is already a member.
//
// On every successful add the centroid is folded forward as a running mean
// over all members and the grid region is rebuilt around the new centroid.
// Once the cluster holds two or more markers every member is re-laid-out
// on the burst circle, shifting earlier members too.
func (c *Cluster) Push(id int) bool {
	for _, existing := range c.members {
		if existing == id {
			return false
		}
	}
	c.members = append(c.members, id)

	home := c.arena[id].home
	n := float64(len(c.members))
	if len(c.members) == 1 {
		c.centroid = home
	} else {
		c.centroid = orb.Point{
			(c.centroid.Lon()*(n-1) + home.Lon()) / n,
			(c.centroid.Lat()*(n-1) + home.Lat()) / n,
		}
	}

	// The grid region must track the centroid before any further
	// containment test runs against this cluster.
	c.gridBounds = ExtendBounds(c.proj,
		orb.Bound{Min: c.centroid, Max: c.centroid}, c.gridSize)

	if len(c.members) < 2 {
		c.arena[c.members[0]].displaced = nil
		c.lines = c.lines[:0]
		return true
	}
	c.layout()
	return true
}

// layout places all members on a circle of gridSize pixels around the
// centroid's screen projection, at equal angular steps counter-clockwise
// from angle zero, and rebuilds the indicator segments.
func (c *Cluster) layout() {
	center := c.proj.Project(c.centroid)
	step := 2 * math.Pi / float64(len(c.members))

	c.lines = c.lines[:0]
	for i, id := range c.members {
		theta := step * float64(i)
		px := Pixel{
			X: center.X + c.gridSize*math.Cos(theta),
			Y: center.Y - c.gridSize*math.Sin(theta),
		}
		pt := c.proj.Unproject(px)
		c.arena[id].displaced = &pt
		c.lines = append(c.lines, Segment{From: c.centroid, To: pt})
	}
}
