package scan

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestZScoresKnownValues(t *testing.T) {
	// mean 2, population std sqrt(2/3)
	zs := ZScores([]float64{1, 2, 3})
	std := math.Sqrt(2.0 / 3.0)
	want := []float64{-1 / std, 0, 1 / std}
	for i := range zs {
		if math.Abs(zs[i]-want[i]) > 1e-9 {
			t.Fatalf("z-scores %v, want %v", zs, want)
		}
	}
}

func TestZScoresEmpty(t *testing.T) {
	if zs := ZScores(nil); len(zs) != 0 {
		t.Fatalf("expected empty result, got %v", zs)
	}
}

func Test_ZScoresZeroVariance(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("all-equal columns give all-zero z-scores, never NaN", prop.ForAll(
		func(v float64, n int) bool {
			vals := make([]float64, n)
			for i := range vals {
				vals[i] = v
			}
			for _, z := range ZScores(vals) {
				if z != 0 || math.IsNaN(z) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(-1e6, 1e6),
		gen.IntRange(1, 100),
	))

	properties.Property("z-scores are finite for finite input", prop.ForAll(
		func(vals []float64) bool {
			for _, z := range ZScores(vals) {
				if math.IsNaN(z) || math.IsInf(z, 0) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-1e6, 1e6)),
	))

	properties.TestingRun(t)
}
