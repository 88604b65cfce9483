package scan

import "math"

// ZScores standardizes vals against their own mean and population standard
// deviation. A zero standard deviation (all values equal) yields all-zero
// z-scores rather than NaN.
func ZScores(vals []float64) []float64 {
	zs := make([]float64, len(vals))
	if len(vals) == 0 {
		return zs
	}
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))

	variance := 0.0
	for _, v := range vals {
		variance += (v - mean) * (v - mean)
	}
	std := math.Sqrt(variance / float64(len(vals)))
	if std == 0 {
		return zs
	}
	for i, v := range vals {
		zs[i] = (v - mean) / std
	}
	return zs
}
