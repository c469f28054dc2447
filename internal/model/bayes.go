package model

import (
	"math"

	"github.com/rodmarques/counterscan/internal/domain"
)

// varianceSmoothing is the fraction of the largest feature variance
// added to every variance so fully constant features stay numerically
// stable.
const varianceSmoothing = 1e-9

// GaussianNB is a Gaussian naive Bayes classifier over dense feature
// vectors.
type GaussianNB struct {
	Classes  []domain.Category
	Priors   []float64
	Means    [][]float64
	Variance [][]float64
}

// Fit estimates per-class feature means, variances and priors. Rows in
// x and labels in y correspond by index.
func (g *GaussianNB) Fit(x [][]float64, y []domain.Category) {
	byClass := make(map[domain.Category][][]float64)
	for i, row := range x {
		byClass[y[i]] = append(byClass[y[i]], row)
	}

	g.Classes = g.Classes[:0]
	for _, c := range []domain.Category{domain.CategoryOriginal, domain.CategorySuspect, domain.CategoryCompatible} {
		if len(byClass[c]) > 0 {
			g.Classes = append(g.Classes, c)
		}
	}

	width := len(x[0])
	total := float64(len(x))
	g.Priors = make([]float64, len(g.Classes))
	g.Means = make([][]float64, len(g.Classes))
	g.Variance = make([][]float64, len(g.Classes))

	var maxVar float64
	for ci, c := range g.Classes {
		rows := byClass[c]
		n := float64(len(rows))
		g.Priors[ci] = n / total

		mean := make([]float64, width)
		for _, row := range rows {
			for i, v := range row {
				mean[i] += v
			}
		}
		for i := range mean {
			mean[i] /= n
		}

		variance := make([]float64, width)
		for _, row := range rows {
			for i, v := range row {
				d := v - mean[i]
				variance[i] += d * d
			}
		}
		for i := range variance {
			variance[i] /= n
			if variance[i] > maxVar {
				maxVar = variance[i]
			}
		}

		g.Means[ci] = mean
		g.Variance[ci] = variance
	}

	eps := varianceSmoothing * maxVar
	if eps == 0 {
		eps = varianceSmoothing
	}
	for ci := range g.Variance {
		for i := range g.Variance[ci] {
			g.Variance[ci][i] += eps
		}
	}
}

// PredictProba returns the posterior probability per class, indexed
// like Classes.
func (g *GaussianNB) PredictProba(row []float64) []float64 {
	logProb := make([]float64, len(g.Classes))
	for ci := range g.Classes {
		lp := math.Log(g.Priors[ci])
		for i, v := range row {
			variance := g.Variance[ci][i]
			d := v - g.Means[ci][i]
			lp -= 0.5 * (math.Log(2*math.Pi*variance) + d*d/variance)
		}
		logProb[ci] = lp
	}

	// Log-sum-exp keeps the normalization from underflowing.
	maxLP := logProb[0]
	for _, lp := range logProb[1:] {
		if lp > maxLP {
			maxLP = lp
		}
	}
	var sum float64
	probs := make([]float64, len(logProb))
	for i, lp := range logProb {
		probs[i] = math.Exp(lp - maxLP)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// Predict returns the most probable class and its posterior
// probability.
func (g *GaussianNB) Predict(row []float64) (domain.Category, float64) {
	probs := g.PredictProba(row)
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return g.Classes[best], probs[best]
}
