package ledger

import "math"

// AnomalyResult is the z-score of the current value against a trailing
// baseline.
type AnomalyResult struct {
	Z    float64 `json:"z"`
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
}

// AnomalyScore scores the last value of a [m-3, m-2, m-1, current] window
// against the population mean and standard deviation of the first three.
// The standard deviation is floored to 1 when zero so a flat baseline does
// not divide by zero. A missing current value is treated as zero.
func AnomalyScore(values []float64) AnomalyResult {
	baseline := values
	if len(baseline) > 3 {
		baseline = baseline[:3]
	}
	var cur float64
	if len(values) > 3 {
		cur = values[3]
	}

	n := float64(len(baseline))
	if n == 0 {
		n = 1
	}
	var sum float64
	for _, x := range baseline {
		sum += x
	}
	mean := sum / n

	var varSum float64
	for _, x := range baseline {
		d := x - mean
		varSum += d * d
	}
	sd := math.Sqrt(varSum / n)
	if sd == 0 {
		sd = 1
	}

	return AnomalyResult{Z: (cur - mean) / sd, Mean: mean, SD: sd}
}
