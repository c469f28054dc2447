package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rodmarques/counterscan/internal/domain"
)

// ErrRunNotFound is returned when a scan run id does not exist.
var ErrRunNotFound = errors.New("storage: scan run not found")

// ScanRun is the stored summary of one analysis run.
type ScanRun struct {
	ID            string    `db:"id"`
	Query         string    `db:"query"`
	StartedAt     time.Time `db:"started_at"`
	DurationMs    int64     `db:"duration_ms"`
	TotalProducts int       `db:"total_products"`
	HighRisk      int       `db:"high_risk"`
	MediumRisk    int       `db:"medium_risk"`
	LowRisk       int       `db:"low_risk"`
}

// ScanResult is one stored product verdict.
type ScanResult struct {
	ID           int64     `db:"id"`
	RunID        string    `db:"run_id"`
	ASIN         string    `db:"asin"`
	Title        string    `db:"title"`
	URL          string    `db:"url"`
	Price        *string   `db:"price"`
	Seller       string    `db:"seller"`
	Description  string    `db:"description"`
	Category     string    `db:"category"`
	Confidence   float64   `db:"confidence"`
	RiskScore    int       `db:"risk_score"`
	RiskLevel    string    `db:"risk_level"`
	PriceAnomaly string    `db:"price_anomaly"`
	AnalyzedAt   time.Time `db:"analyzed_at"`
}

// RunRepository handles database operations for scan runs and results.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// SaveRun stores a run summary and all of its results in one
// transaction.
func (r *RunRepository) SaveRun(ctx context.Context, run *ScanRun, products []domain.AnalyzedProduct) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runQuery := `
		INSERT INTO scan_runs (
			id, query, started_at, duration_ms,
			total_products, high_risk, medium_risk, low_risk
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, runQuery,
		run.ID, run.Query, run.StartedAt, run.DurationMs,
		run.TotalProducts, run.HighRisk, run.MediumRisk, run.LowRisk,
	); err != nil {
		return fmt.Errorf("failed to insert scan run: %w", err)
	}

	resultQuery := `
		INSERT INTO scan_results (
			run_id, asin, title, url, price, seller, description,
			category, confidence, risk_score, risk_level, price_anomaly,
			analyzed_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i := range products {
		p := &products[i]
		var price *string
		if ep := p.EffectivePrice(); ep != nil {
			s := ep.String()
			price = &s
		}
		if _, err := tx.ExecContext(ctx, resultQuery,
			run.ID, p.ASIN, p.Title, p.URL, price,
			p.EffectiveSeller(), p.Description,
			string(p.Category), p.Confidence, p.RiskScore,
			string(p.RiskLevel), p.PriceAnomaly, p.AnalyzedAt,
		); err != nil {
			return fmt.Errorf("failed to insert scan result %s: %w", p.ASIN, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit scan run: %w", err)
	}
	return nil
}

// GetRun retrieves one run summary by id.
func (r *RunRepository) GetRun(ctx context.Context, id string) (*ScanRun, error) {
	var run ScanRun
	query := `
		SELECT id, query, started_at, duration_ms,
		       total_products, high_risk, medium_risk, low_risk
		FROM scan_runs
		WHERE id = ?
	`
	if err := r.db.GetContext(ctx, &run, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to get scan run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves up to limit run summaries, most recent first.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*ScanRun, error) {
	var runs []*ScanRun
	query := `
		SELECT id, query, started_at, duration_ms,
		       total_products, high_risk, medium_risk, low_risk
		FROM scan_runs
		ORDER BY started_at DESC
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list scan runs: %w", err)
	}
	return runs, nil
}

// LatestRun retrieves the most recent run summary.
func (r *RunRepository) LatestRun(ctx context.Context) (*ScanRun, error) {
	runs, err := r.ListRuns(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return runs[0], nil
}

// ResultsForRun retrieves all results of a run, highest risk first.
func (r *RunRepository) ResultsForRun(ctx context.Context, runID string) ([]*ScanResult, error) {
	var results []*ScanResult
	query := `
		SELECT id, run_id, asin, title, url, price, seller, description,
		       category, confidence, risk_score, risk_level, price_anomaly,
		       analyzed_at
		FROM scan_results
		WHERE run_id = ?
		ORDER BY risk_score DESC, asin
	`
	if err := r.db.SelectContext(ctx, &results, query, runID); err != nil {
		return nil, fmt.Errorf("failed to get scan results: %w", err)
	}
	return results, nil
}

// HighRiskResults retrieves results at a given risk level for a run.
func (r *RunRepository) HighRiskResults(ctx context.Context, runID string, level domain.RiskLevel) ([]*ScanResult, error) {
	var results []*ScanResult
	query := `
		SELECT id, run_id, asin, title, url, price, seller, description,
		       category, confidence, risk_score, risk_level, price_anomaly,
		       analyzed_at
		FROM scan_results
		WHERE run_id = ? AND risk_level = ?
		ORDER BY risk_score DESC, asin
	`
	if err := r.db.SelectContext(ctx, &results, query, runID, string(level)); err != nil {
		return nil, fmt.Errorf("failed to get high risk results: %w", err)
	}
	return results, nil
}

// CategoryCounts aggregates result counts per category for a run.
func (r *RunRepository) CategoryCounts(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, COUNT(*) AS count
		FROM scan_results
		WHERE run_id = ?
		GROUP BY category
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}
	return counts, nil
}
