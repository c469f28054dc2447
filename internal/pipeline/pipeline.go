// Package pipeline orchestrates training and batch analysis: it
// synthesizes labels, trains or loads the classifier, and turns scraped
// records into verdicts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rodmarques/counterscan/internal/catalog"
	"github.com/rodmarques/counterscan/internal/domain"
	"github.com/rodmarques/counterscan/internal/features"
	"github.com/rodmarques/counterscan/internal/heuristics"
	"github.com/rodmarques/counterscan/internal/logger"
	"github.com/rodmarques/counterscan/internal/model"
)

// Analyzer runs records through feature building, classification and
// risk scoring. The catalog is optional; without it price ratios default
// and no anomaly check happens.
type Analyzer struct {
	classifier *model.Classifier
	builder    *features.Builder
	labeler    *heuristics.Labeler
	catalog    *catalog.Catalog
	logger     logger.Interface
	workers    int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCatalog attaches a suggested-price reference table.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *Analyzer) { a.catalog = c }
}

// WithWorkers sets the analysis concurrency. Values below 1 are
// treated as 1.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// NewAnalyzer builds an analyzer over the given classifier and
// vocabularies.
func NewAnalyzer(classifier *model.Classifier, vocabs *heuristics.Vocabularies, log logger.Interface, opts ...Option) *Analyzer {
	a := &Analyzer{
		classifier: classifier,
		builder:    features.NewBuilder(vocabs),
		labeler:    heuristics.NewLabeler(vocabs),
		logger:     log,
		workers:    1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// EnsureTrained makes the classifier ready to predict. It loads from
// modelPath when a saved model exists; otherwise it synthesizes labels
// for the given records, trains, and saves the result. An empty
// modelPath skips persistence entirely.
func (a *Analyzer) EnsureTrained(records []*domain.ProductRecord, modelPath string) error {
	if a.classifier.Trained() {
		return nil
	}

	if modelPath != "" {
		err := a.classifier.Load(modelPath)
		if err == nil {
			return nil
		}
		if !errors.Is(err, model.ErrModelNotFound) {
			return err
		}
		a.logger.Info("no saved model, training from scan data", "path", modelPath)
	}

	report, err := a.Train(records)
	if err != nil {
		return err
	}
	a.logger.Info("trained on synthesized labels",
		"samples", report.Samples, "accuracy", report.Accuracy)

	if modelPath != "" {
		return a.classifier.Save(modelPath)
	}
	return nil
}

// Train synthesizes heuristic labels for records and fits the
// classifier on them.
func (a *Analyzer) Train(records []*domain.ProductRecord) (*model.TrainReport, error) {
	if len(records) == 0 {
		return nil, model.ErrNoTrainingData
	}

	vectors := make([]domain.FeatureVector, len(records))
	labels := make([]domain.Category, len(records))
	for i, rec := range records {
		vectors[i] = a.builder.Build(rec, a.suggestedPrice(rec))
		labels[i] = a.labeler.Label(rec)
	}
	return a.classifier.Train(vectors, labels)
}

// AnalyzeOne classifies and risk-scores a single record.
func (a *Analyzer) AnalyzeOne(rec *domain.ProductRecord) (domain.AnalyzedProduct, error) {
	vec := a.builder.Build(rec, a.suggestedPrice(rec))
	category, confidence, err := a.classifier.Predict(vec)
	if err != nil {
		return domain.AnalyzedProduct{}, fmt.Errorf("pipeline: classifying %q: %w", rec.ASIN, err)
	}

	score := heuristics.RiskScore(rec, category, confidence)
	verdict := domain.Verdict{
		Category:   category,
		Confidence: confidence,
		RiskScore:  score,
		RiskLevel:  heuristics.RiskLevelFor(score),
	}
	if band, ok := a.priceBand(rec); ok {
		verdict.PriceAnomaly = band.Check(rec.EffectivePrice())
	}

	return domain.AnalyzedProduct{
		ProductRecord: *rec,
		Verdict:       verdict,
		AnalyzedAt:    time.Now(),
	}, nil
}

// BatchResult is the outcome of one analysis run.
type BatchResult struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Products  []domain.AnalyzedProduct
	ByLevel   map[domain.RiskLevel]int
}

// AnalyzeBatch classifies records concurrently while preserving input
// order in the result. The run stops early when ctx is cancelled.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, records []*domain.ProductRecord) (*BatchResult, error) {
	if !a.classifier.Trained() {
		return nil, model.ErrNotTrained
	}

	result := &BatchResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Products:  make([]domain.AnalyzedProduct, len(records)),
		ByLevel:   make(map[domain.RiskLevel]int),
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for w := 0; w < a.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				analyzed, err := a.AnalyzeOne(records[idx])
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					continue
				}
				result.Products[idx] = analyzed
			}
		}()
	}

feed:
	for idx := range records {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	for _, p := range result.Products {
		result.ByLevel[p.RiskLevel]++
	}
	result.Duration = time.Since(result.StartedAt)

	a.logger.Info("analysis run finished",
		"run_id", result.RunID,
		"products", len(result.Products),
		"high_risk", result.ByLevel[domain.RiskHigh],
		"duration", result.Duration)
	return result, nil
}

func (a *Analyzer) suggestedPrice(rec *domain.ProductRecord) *decimal.Decimal {
	if a.catalog == nil {
		return nil
	}
	family, ok := a.catalog.FamilyFor(rec.Title)
	if !ok {
		return nil
	}
	suggested, ok := a.catalog.SuggestedPrice(family)
	if !ok {
		return nil
	}
	return &suggested
}

func (a *Analyzer) priceBand(rec *domain.ProductRecord) (heuristics.PriceBand, bool) {
	if a.catalog == nil {
		return heuristics.PriceBand{}, false
	}
	family, ok := a.catalog.FamilyFor(rec.Title)
	if !ok {
		return heuristics.PriceBand{}, false
	}
	min, max, ok := a.catalog.PriceRange(family)
	if !ok {
		return heuristics.PriceBand{}, false
	}
	return heuristics.BandFor(min, max), true
}
