package trace

// Summary is the aggregate view of a decision Log.
type Summary struct {
	TotalDecisions int     `json:"total_decisions"`
	CloudCount     int     `json:"cloud_count"`
	FogCount       int     `json:"fog_count"`
	CloudFraction  float64 `json:"cloud_fraction"`
	MeanDraw       float64 `json:"mean_draw"`
	// PerFogNode counts the tasks each fog node received from sensors,
	// whether or not they were later offloaded.
	PerFogNode map[string]int `json:"per_fog_node"`
}

// Summarize aggregates l. A nil or empty log yields zero counts.
func Summarize(l *Log) *Summary {
	s := &Summary{PerFogNode: make(map[string]int)}
	if l.Len() == 0 {
		return s
	}

	var drawSum float64
	for _, r := range l.Routings {
		s.PerFogNode[r.FogNode]++
		drawSum += r.Draw
		if r.Offloaded() {
			s.CloudCount++
		} else {
			s.FogCount++
		}
	}
	s.TotalDecisions = l.Len()
	s.CloudFraction = float64(s.CloudCount) / float64(s.TotalDecisions)
	s.MeanDraw = drawSum / float64(s.TotalDecisions)
	return s
}
