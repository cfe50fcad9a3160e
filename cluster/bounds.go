package cluster

import (
	"math"

	"github.com/paulmach/orb"
)

// ExtendBounds expands a geographic rectangle outward by margin pixels on
// every side, in the screen space of the given projector. A point whose
// screen position is up to margin pixels outside the input rectangle lies
// inside the result, which is what keeps clusters from popping in and out
// right at the viewport edge.
//
// Corners are first clamped to the supported world range, so out-of-domain
// input is silently corrected rather than rejected, and the result is
// never inverted.
func ExtendBounds(proj Projector, b orb.Bound, margin float64) orb.Bound {
	min := ClampToWorld(b.Min)
	max := ClampToWorld(b.Max)

	// Screen Y grows downward, so the north-west corner is the pixel
	// top-left and the south-east corner the pixel bottom-right.
	tl := proj.Project(orb.Point{min.Lon(), max.Lat()})
	br := proj.Project(orb.Point{max.Lon(), min.Lat()})

	tl.X -= margin
	tl.Y -= margin
	br.X += margin
	br.Y += margin

	nw := proj.Unproject(tl)
	se := proj.Unproject(br)
	return orb.Bound{
		Min: orb.Point{
			math.Min(nw.Lon(), se.Lon()),
			math.Min(nw.Lat(), se.Lat()),
		},
		Max: orb.Point{
			math.Max(nw.Lon(), se.Lon()),
			math.Max(nw.Lat(), se.Lat()),
		},
	}
}
