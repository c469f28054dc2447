package model

import "math"

// Scaler standardizes numeric features to zero mean and unit variance.
// Constant features keep a standard deviation of 1 so transforming them
// is a no-op shift.
type Scaler struct {
	Mean []float64
	Std  []float64
}

// Fit learns per-column mean and standard deviation from rows. All rows
// must have equal width.
func (s *Scaler) Fit(rows [][]float64) {
	if len(rows) == 0 {
		return
	}
	width := len(rows[0])
	s.Mean = make([]float64, width)
	s.Std = make([]float64, width)

	for _, row := range rows {
		for i, v := range row {
			s.Mean[i] += v
		}
	}
	n := float64(len(rows))
	for i := range s.Mean {
		s.Mean[i] /= n
	}

	for _, row := range rows {
		for i, v := range row {
			d := v - s.Mean[i]
			s.Std[i] += d * d
		}
	}
	for i := range s.Std {
		s.Std[i] = math.Sqrt(s.Std[i] / n)
		if s.Std[i] == 0 {
			s.Std[i] = 1
		}
	}
}

// Transform standardizes one row in place into a new slice.
func (s *Scaler) Transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for i, v := range row {
		out[i] = (v - s.Mean[i]) / s.Std[i]
	}
	return out
}
