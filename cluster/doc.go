// Package cluster groups geographic markers shown inside a map viewport
// into non-overlapping visual clusters.
//
// The engine owns the full marker set and rebuilds the cluster partition
// from scratch on every relayout trigger (pan end, zoom end, marker set
// change). Markers are assigned greedily: each marker joins the nearest
// existing cluster whose pixel grid region contains it, or starts a new
// one. Clusters with two or more members burst their markers onto a small
// circle around the running centroid so individual markers stay clickable,
// and expose indicator line segments from the centroid to each member.
//
// The same approach is used by the classic map-widget marker clusterers:
// it is deliberately a greedy nearest-fit pass, not a globally optimal
// partition, which keeps a full relayout linear in markers times clusters.
//
// Basic usage:
//
//	proj := cluster.NewMercatorProjector()
//	proj.SetViewport(orb.Point{116.404, 39.915}, 12, 1024, 768)
//
//	eng, err := cluster.NewEngine(proj,
//		cluster.WithGridSize(60),
//		cluster.WithObserver(func(views []cluster.ClusterView) {
//			// hand views to the rendering layer
//		}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer eng.Close()
//
//	eng.AddMarkers(inputs)
//
// The rendering layer only ever receives immutable ClusterView snapshots;
// it must never reach into engine state.
package cluster
