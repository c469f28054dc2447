// Package scan implements the scan command: collect listings, classify
// them and write the reports.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rodmarques/counterscan/internal/catalog"
	"github.com/rodmarques/counterscan/internal/config"
	"github.com/rodmarques/counterscan/internal/domain"
	"github.com/rodmarques/counterscan/internal/heuristics"
	"github.com/rodmarques/counterscan/internal/logger"
	"github.com/rodmarques/counterscan/internal/model"
	"github.com/rodmarques/counterscan/internal/output"
	"github.com/rodmarques/counterscan/internal/pipeline"
	"github.com/rodmarques/counterscan/internal/scraper"
	"github.com/rodmarques/counterscan/internal/storage"
)

// Command returns the scan command.
func Command() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan marketplace listings and classify them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if query != "" {
				cfg.Scan.Query = query
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "search query (overrides config)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	log = log.WithComponent("scan")

	log.Info("starting scan", "query", cfg.Scan.Query)

	s := scraper.New(cfg.Scraper, log)
	records, err := s.Search(ctx, cfg.Scan.Query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(records) == 0 {
		log.Warn("no products found", "query", cfg.Scan.Query)
		return nil
	}
	if cfg.Scan.EnrichDetails {
		if err := s.Enrich(ctx, records); err != nil {
			return fmt.Errorf("detail enrichment failed: %w", err)
		}
	}

	opts := []pipeline.Option{pipeline.WithWorkers(cfg.Scan.Workers)}
	if cfg.Scan.ReferenceTable != "" {
		cat, catErr := catalog.Load(cfg.Scan.ReferenceTable, log)
		if catErr != nil {
			return catErr
		}
		opts = append(opts, pipeline.WithCatalog(cat))
	}

	analyzer := pipeline.NewAnalyzer(model.NewClassifier(log), heuristics.DefaultVocabularies(), log, opts...)
	if err := analyzer.EnsureTrained(records, cfg.Scan.ModelPath); err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	result, err := analyzer.AnalyzeBatch(ctx, records)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := persist(ctx, cfg, result); err != nil {
		return err
	}
	if err := writeOutputs(cfg, result); err != nil {
		return err
	}

	printSummary(result)
	return nil
}

func persist(ctx context.Context, cfg *config.Config, result *pipeline.BatchResult) error {
	if cfg.Scan.DatabasePath == "" {
		return nil
	}
	if dir := filepath.Dir(cfg.Scan.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := storage.Open(cfg.Scan.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	run := &storage.ScanRun{
		ID:            result.RunID,
		Query:         cfg.Scan.Query,
		StartedAt:     result.StartedAt,
		DurationMs:    result.Duration.Milliseconds(),
		TotalProducts: len(result.Products),
		HighRisk:      result.ByLevel[domain.RiskHigh],
		MediumRisk:    result.ByLevel[domain.RiskMedium],
		LowRisk:       result.ByLevel[domain.RiskLow],
	}
	return storage.NewRunRepository(db).SaveRun(ctx, run, result.Products)
}

func writeOutputs(cfg *config.Config, result *pipeline.BatchResult) error {
	if err := os.MkdirAll(cfg.Scan.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	csvPath := filepath.Join(cfg.Scan.OutputDir, "produtos.csv")
	if err := output.WriteCSV(csvPath, result.Products); err != nil {
		return err
	}

	reportPath := filepath.Join(cfg.Scan.OutputDir, "relatorio.html")
	data := output.BuildReportData(result.RunID, cfg.Scan.Query, result.Products)
	if err := output.WriteHTMLReport(reportPath, data); err != nil {
		return err
	}

	alertsPath := filepath.Join(cfg.Scan.OutputDir, "alertas.txt")
	if _, err := output.WriteAlerts(alertsPath, result.Products); err != nil {
		return err
	}
	return nil
}

func printSummary(result *pipeline.BatchResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ASIN", "Título", "Preço", "Vendedor", "Categoria", "Risco"})
	for i := range result.Products {
		p := &result.Products[i]
		price := "-"
		if ep := p.EffectivePrice(); ep != nil {
			price = "R$ " + ep.StringFixed(2)
		}
		t.AppendRow(table.Row{
			p.ASIN, truncate(p.Title, 48), price,
			truncate(p.EffectiveSeller(), 24), p.Category,
			fmt.Sprintf("%s (%d)", p.RiskLevel, p.RiskScore),
		})
	}
	t.AppendFooter(table.Row{
		"", "", "", "",
		fmt.Sprintf("%d produtos", len(result.Products)),
		fmt.Sprintf("ALTO: %d", result.ByLevel[domain.RiskHigh]),
	})
	t.Render()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
