package model

import (
	"math"
	"strconv"
)

// UnclusteredID is the sentinel cluster key that unclustered structures are
// folded into during aggregation.
const UnclusteredID = "-"

// Structure is a candidate molecular model produced by an upstream sampling
// stage, together with the bookkeeping the analysis stages need: where the
// coordinate file lives, the score the workflow assigned to it, and which
// cluster it was assigned to (if any). Structures are immutable once handed
// to a scheduler.
type Structure struct {
	// Path is the location of the coordinate file.
	Path string
	// Name is the display name used to derive per-structure output files.
	Name string
	// Score is the raw workflow score. It may come from any upstream stage
	// and is kept as text; use ScoreValue to coerce it.
	Score string
	// ClusterID is empty for unclustered structures.
	ClusterID string
}

// Cluster returns the cluster key for aggregation, folding unclustered
// structures into UnclusteredID.
func (s Structure) Cluster() string {
	if s.ClusterID == "" {
		return UnclusteredID
	}
	return s.ClusterID
}

// ScoreValue coerces the workflow score to a float. Scores that do not parse
// are returned as NaN rather than failing the structure.
func (s Structure) ScoreValue() float64 {
	v, err := strconv.ParseFloat(s.Score, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
