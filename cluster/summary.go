package cluster

// Summary aggregates one cluster snapshot for dashboards and diagnostics.
type Summary struct {
	TotalMarkers   int `json:"totalMarkers"`
	NumClusters    int `json:"numClusters"`
	NumReal        int `json:"numRealClusters"`
	NumSingletons  int `json:"numSinglePoints"`
	LargestCluster int `json:"largestCluster"`
}

// Summarize reduces a snapshot to counts.
func Summarize(views []ClusterView) Summary {
	s := Summary{NumClusters: len(views)}
	for _, v := range views {
		n := len(v.Members)
		s.TotalMarkers += n
		if v.Real {
			s.NumReal++
		} else {
			s.NumSingletons++
		}
		if n > s.LargestCluster {
			s.LargestCluster = n
		}
	}
	return s
}
