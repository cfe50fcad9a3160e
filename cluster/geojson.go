package cluster

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ToGeoJSON converts a cluster snapshot to a GeoJSON FeatureCollection
// suitable for a map rendering layer.
//
// Each cluster contributes one centroid Point feature (cluster flag, point
// count, diagnostic name), one Point feature per member (key plus the
// caller's metadata), and one LineString feature per indicator segment.
func ToGeoJSON(views []ClusterView) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, v := range views {
		centroid := geojson.NewFeature(v.Centroid)
		centroid.Properties = geojson.Properties{
			"cluster":     v.Real,
			"point_count": len(v.Members),
			"name":        v.Name,
		}
		fc.Append(centroid)

		for _, m := range v.Members {
			f := geojson.NewFeature(m.Position)
			f.Properties = geojson.Properties{"key": m.Key}
			for k, val := range m.Meta {
				f.Properties[k] = val
			}
			fc.Append(f)
		}

		for _, line := range v.Lines {
			f := geojson.NewFeature(orb.LineString{line.From, line.To})
			f.Properties = geojson.Properties{
				"indicator": true,
				"name":      v.Name,
			}
			fc.Append(f)
		}
	}

	return fc
}
