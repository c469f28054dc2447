// Package report implements the report command: inspect stored scan
// runs.
package report

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rodmarques/counterscan/internal/config"
	"github.com/rodmarques/counterscan/internal/logger"
	"github.com/rodmarques/counterscan/internal/storage"
)

// Command returns the report command.
func Command() *cobra.Command {
	var runID string
	var listRuns bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show stored scan runs and their results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, runID, listRuns)
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "run id (defaults to the most recent run)")
	cmd.Flags().BoolVar(&listRuns, "list", false, "list stored runs instead of showing results")
	return cmd
}

const listLimit = 20

func run(ctx context.Context, cfg *config.Config, runID string, listRuns bool) error {
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	log = log.WithComponent("report")

	db, err := storage.Open(cfg.Scan.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Debug("database opened", "path", cfg.Scan.DatabasePath)
	repo := storage.NewRunRepository(db)

	if listRuns {
		return printRuns(ctx, repo)
	}

	var scanRun *storage.ScanRun
	if runID != "" {
		scanRun, err = repo.GetRun(ctx, runID)
	} else {
		scanRun, err = repo.LatestRun(ctx)
	}
	if err != nil {
		return err
	}

	results, err := repo.ResultsForRun(ctx, scanRun.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Execução %s | consulta %q | %s\n",
		scanRun.ID, scanRun.Query, scanRun.StartedAt.Format("02/01/2006 15:04"))
	fmt.Printf("Produtos: %d | ALTO: %d | MÉDIO: %d | BAIXO: %d\n\n",
		scanRun.TotalProducts, scanRun.HighRisk, scanRun.MediumRisk, scanRun.LowRisk)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ASIN", "Título", "Preço", "Vendedor", "Categoria", "Risco", "Alerta"})
	for _, r := range results {
		price := "-"
		if r.Price != nil {
			price = "R$ " + *r.Price
		}
		t.AppendRow(table.Row{
			r.ASIN, truncate(r.Title, 48), price, truncate(r.Seller, 24),
			r.Category, fmt.Sprintf("%s (%d)", r.RiskLevel, r.RiskScore),
			r.PriceAnomaly,
		})
	}
	t.Render()
	return nil
}

func printRuns(ctx context.Context, repo *storage.RunRepository) error {
	runs, err := repo.ListRuns(ctx, listLimit)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Execução", "Consulta", "Início", "Produtos", "ALTO", "MÉDIO", "BAIXO"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID, r.Query, r.StartedAt.Format("02/01/2006 15:04"),
			r.TotalProducts, r.HighRisk, r.MediumRisk, r.LowRisk,
		})
	}
	t.Render()
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
