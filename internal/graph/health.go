package graph

import "math"

// HealthBreakdown shows the sub-scores of the health formula
type HealthBreakdown struct {
	Connectivity float64 `json:"connectivity"`
	Components   float64 `json:"components"`
	Coverage     float64 `json:"coverage"`
	Tidiness     float64 `json:"tidiness"`
}

// AnalysisReport is the full analysis result
type AnalysisReport struct {
	HealthScore     float64         `json:"health_score"`
	HealthBreakdown HealthBreakdown `json:"health_breakdown"`
	Topology        *TopologyReport `json:"topology"`
}

// AnalyzerConfig holds analysis parameters
type AnalyzerConfig struct {
	HubThreshold int
	TopN         int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		HubThreshold: 10,
		TopN:         50,
	}
}

// Analyze computes the topology report and a composite lattice health score.
// Connectivity penalizes orphans, components rewards one connected lattice,
// coverage rewards a high share of usable tags, tidiness penalizes empty
// categories.
func Analyze(snap *Snapshot, config *AnalyzerConfig) *AnalysisReport {
	topology := ComputeTopology(snap, config.HubThreshold, config.TopN)

	total := float64(topology.TotalNodes)

	var connectivity, components, coverage, tidiness float64
	if total > 0 {
		connectivity = clamp(1.0-math.Min(float64(topology.OrphanCount)/total, 0.2)*5.0, 0, 1)
		coverage = clamp(float64(topology.TagCount)/total, 0, 1)
		tidiness = clamp(1.0-math.Min(float64(topology.EmptyCategoryCount)/total, 0.1)*10.0, 0, 1)
	}
	if topology.NumComponents > 0 {
		components = clamp(1.0/float64(topology.NumComponents), 0, 1)
	}

	healthScore := 0.30*connectivity + 0.25*components + 0.25*coverage + 0.20*tidiness

	return &AnalysisReport{
		HealthScore: healthScore,
		HealthBreakdown: HealthBreakdown{
			Connectivity: connectivity,
			Components:   components,
			Coverage:     coverage,
			Tidiness:     tidiness,
		},
		Topology: topology,
	}
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
