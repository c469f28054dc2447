package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodmarques/counterscan/internal/domain"
)

func testRepo(t *testing.T) *RunRepository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRunRepository(db)
}

func sampleRun() (*ScanRun, []domain.AnalyzedProduct) {
	price := decimal.RequireFromString("19.90")
	products := []domain.AnalyzedProduct{
		{
			ProductRecord: domain.ProductRecord{
				ASIN:   "B0TEST001",
				Title:  "Cartucho genérico 664",
				URL:    "https://example.com/dp/B0TEST001",
				Price:  &price,
				Seller: "Marketplace XYZ",
			},
			Verdict: domain.Verdict{
				Category:   domain.CategorySuspect,
				Confidence: 0.91,
				RiskScore:  7,
				RiskLevel:  domain.RiskHigh,
			},
			AnalyzedAt: time.Now().UTC(),
		},
		{
			ProductRecord: domain.ProductRecord{
				ASIN:   "B0TEST002",
				Title:  "Cartucho HP 664 Original",
				URL:    "https://example.com/dp/B0TEST002",
				Seller: "Amazon.com.br",
			},
			Verdict: domain.Verdict{
				Category:   domain.CategoryOriginal,
				Confidence: 0.97,
				RiskScore:  0,
				RiskLevel:  domain.RiskLow,
			},
			AnalyzedAt: time.Now().UTC(),
		},
	}
	run := &ScanRun{
		ID:            "run-123",
		Query:         "cartucho hp 664",
		StartedAt:     time.Now().UTC(),
		DurationMs:    1500,
		TotalProducts: len(products),
		HighRisk:      1,
		LowRisk:       1,
	}
	return run, products
}

func TestSaveAndGetRun(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	run, products := sampleRun()

	require.NoError(t, repo.SaveRun(ctx, run, products))

	got, err := repo.GetRun(ctx, "run-123")
	require.NoError(t, err)
	assert.Equal(t, run.Query, got.Query)
	assert.Equal(t, run.TotalProducts, got.TotalProducts)
	assert.Equal(t, run.HighRisk, got.HighRisk)
}

func TestGetRun_NotFound(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.GetRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestResultsForRun(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	run, products := sampleRun()
	require.NoError(t, repo.SaveRun(ctx, run, products))

	results, err := repo.ResultsForRun(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Highest risk first.
	assert.Equal(t, "B0TEST001", results[0].ASIN)
	assert.Equal(t, "ALTO", results[0].RiskLevel)
	require.NotNil(t, results[0].Price)
	assert.Equal(t, "19.9", *results[0].Price)
	assert.Nil(t, results[1].Price)
}

func TestHighRiskResults(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	run, products := sampleRun()
	require.NoError(t, repo.SaveRun(ctx, run, products))

	results, err := repo.HighRiskResults(ctx, run.ID, domain.RiskHigh)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "B0TEST001", results[0].ASIN)
}

func TestListAndLatestRun(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first, products := sampleRun()
	first.ID = "run-001"
	first.StartedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.SaveRun(ctx, first, products))

	second, products := sampleRun()
	second.ID = "run-002"
	require.NoError(t, repo.SaveRun(ctx, second, products))

	runs, err := repo.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-002", runs[0].ID)

	latest, err := repo.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-002", latest.ID)
}

func TestLatestRun_Empty(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.LatestRun(context.Background())
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestCategoryCounts(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	run, products := sampleRun()
	require.NoError(t, repo.SaveRun(ctx, run, products))

	counts, err := repo.CategoryCounts(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["SUSPEITO"])
	assert.Equal(t, 1, counts["ORIGINAL"])
}
