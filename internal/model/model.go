// Package model wraps the text vectorizer, feature scaler and naive
// Bayes classifier behind a single train/predict/persist surface.
package model

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rodmarques/counterscan/internal/domain"
	"github.com/rodmarques/counterscan/internal/logger"
)

// Sentinel errors for the classifier lifecycle.
var (
	ErrNotTrained          = errors.New("model: not trained")
	ErrNoTrainingData      = errors.New("model: no training data")
	ErrInsufficientClasses = errors.New("model: training data must span at least two classes")
	ErrModelNotFound       = errors.New("model: saved model not found")
)

// holdoutEvery selects every n-th sample of each class for the
// evaluation hold-out.
const holdoutEvery = 5

// fittedState is everything a trained classifier needs to predict. It
// is immutable once built; retraining swaps in a fresh state.
type fittedState struct {
	Vectorizer *Vectorizer
	Scaler     *Scaler
	Bayes      *GaussianNB
	TrainedAt  time.Time
	Accuracy   float64
	Samples    int
}

// TrainReport summarizes one training run.
type TrainReport struct {
	Samples        int
	HoldoutSamples int
	Accuracy       float64
	Classes        []domain.Category
	TrainedAt      time.Time
}

// Classifier is the stateful classifier. Predictions fail with
// ErrNotTrained until Train or Load succeeds. Concurrent reads are safe
// and retraining swaps state atomically.
type Classifier struct {
	mu     sync.RWMutex
	state  *fittedState
	logger logger.Interface
}

// NewClassifier builds an untrained classifier.
func NewClassifier(log logger.Interface) *Classifier {
	return &Classifier{logger: log}
}

// Trained reports whether the classifier can predict.
func (c *Classifier) Trained() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state != nil
}

// TrainedAt returns when the current state was fitted, or the zero time
// when untrained.
func (c *Classifier) TrainedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state == nil {
		return time.Time{}
	}
	return c.state.TrainedAt
}

// Train fits a fresh model on the given vectors and labels and swaps it
// in. The data must span at least two classes. A stratified hold-out of
// every fifth sample per class measures accuracy; classes too small to
// spare a sample contribute all samples to training.
func (c *Classifier) Train(vectors []domain.FeatureVector, labels []domain.Category) (*TrainReport, error) {
	if len(vectors) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(vectors) != len(labels) {
		return nil, fmt.Errorf("model: %d vectors for %d labels", len(vectors), len(labels))
	}

	distinct := make(map[domain.Category]bool)
	for _, label := range labels {
		distinct[label] = true
	}
	if len(distinct) < 2 {
		return nil, ErrInsufficientClasses
	}

	trainIdx, holdIdx := stratifiedSplit(labels)

	vectorizer := NewVectorizer()
	docs := make([]string, len(trainIdx))
	for i, idx := range trainIdx {
		docs[i] = vectors[idx].Text
	}
	vectorizer.Fit(docs)

	scaler := &Scaler{}
	numeric := make([][]float64, len(trainIdx))
	for i, idx := range trainIdx {
		numeric[i] = vectors[idx].Numeric[:]
	}
	scaler.Fit(numeric)

	state := &fittedState{
		Vectorizer: vectorizer,
		Scaler:     scaler,
		Bayes:      &GaussianNB{},
		TrainedAt:  time.Now(),
		Samples:    len(vectors),
	}

	x := make([][]float64, len(trainIdx))
	y := make([]domain.Category, len(trainIdx))
	for i, idx := range trainIdx {
		x[i] = state.combine(vectors[idx])
		y[i] = labels[idx]
	}
	state.Bayes.Fit(x, y)

	eval := holdIdx
	if len(eval) == 0 {
		eval = trainIdx
	}
	correct := 0
	for _, idx := range eval {
		got, _ := state.Bayes.Predict(state.combine(vectors[idx]))
		if got == labels[idx] {
			correct++
		}
	}
	state.Accuracy = float64(correct) / float64(len(eval))

	c.mu.Lock()
	c.state = state
	c.mu.Unlock()

	c.logger.Info("model trained",
		"samples", state.Samples,
		"holdout", len(holdIdx),
		"accuracy", state.Accuracy,
		"classes", len(state.Bayes.Classes))

	return &TrainReport{
		Samples:        state.Samples,
		HoldoutSamples: len(holdIdx),
		Accuracy:       state.Accuracy,
		Classes:        state.Bayes.Classes,
		TrainedAt:      state.TrainedAt,
	}, nil
}

// Predict classifies one feature vector, returning the label and the
// posterior probability of that label.
func (c *Classifier) Predict(vec domain.FeatureVector) (domain.Category, float64, error) {
	c.mu.RLock()
	state := c.state
	c.mu.RUnlock()
	if state == nil {
		return "", 0, ErrNotTrained
	}
	category, confidence := state.Bayes.Predict(state.combine(vec))
	return category, confidence, nil
}

// Accuracy returns the hold-out accuracy of the current state.
func (c *Classifier) Accuracy() (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state == nil {
		return 0, ErrNotTrained
	}
	return c.state.Accuracy, nil
}

// Save persists the trained state to path. The write goes through a
// temp file and rename so a crash never leaves a truncated model.
func (c *Classifier) Save(path string) error {
	c.mu.RLock()
	state := c.state
	c.mu.RUnlock()
	if state == nil {
		return ErrNotTrained
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("model: creating model directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".model-*")
	if err != nil {
		return fmt.Errorf("model: creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(state); err != nil {
		tmp.Close()
		return fmt.Errorf("model: encoding model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("model: closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("model: replacing model file: %w", err)
	}

	c.logger.Info("model saved", "path", path)
	return nil
}

// Load restores a previously saved state from path. A missing file
// yields ErrModelNotFound.
func (c *Classifier) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrModelNotFound
		}
		return fmt.Errorf("model: opening model file: %w", err)
	}
	defer f.Close()

	state := &fittedState{}
	if err := gob.NewDecoder(f).Decode(state); err != nil {
		return fmt.Errorf("model: decoding model: %w", err)
	}

	c.mu.Lock()
	c.state = state
	c.mu.Unlock()

	c.logger.Info("model loaded", "path", path, "trained_at", state.TrainedAt)
	return nil
}

// combine assembles the full classifier input: TF-IDF text vector
// followed by the standardized numeric features.
func (s *fittedState) combine(vec domain.FeatureVector) []float64 {
	text := s.Vectorizer.Transform(vec.Text)
	numeric := s.Scaler.Transform(vec.Numeric[:])
	return append(text, numeric...)
}

// stratifiedSplit partitions indices into training and hold-out sets,
// taking every holdoutEvery-th sample of each class while always
// leaving that class at least one training sample.
func stratifiedSplit(labels []domain.Category) (train, holdout []int) {
	byClass := make(map[domain.Category][]int)
	for i, label := range labels {
		byClass[label] = append(byClass[label], i)
	}

	for _, indices := range byClass {
		if len(indices) < holdoutEvery {
			train = append(train, indices...)
			continue
		}
		for i, idx := range indices {
			if (i+1)%holdoutEvery == 0 {
				holdout = append(holdout, idx)
			} else {
				train = append(train, idx)
			}
		}
	}
	return train, holdout
}
