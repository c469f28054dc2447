// Package train implements the train command: fit the classifier on
// freshly scraped or previously exported product data.
package train

import (
	"context"
	"fmt"
	"os"

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
)

// Command returns the train command.
func Command() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the classifier and save the model",
		Long: `Trains the classifier on product data labeled by the heuristic
scorer. Data comes from a previous CSV export (--input) or from a fresh
marketplace search.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, input)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "CSV export to train from instead of scraping")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, input string) error {
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	log = log.WithComponent("train")

	var records []*domain.ProductRecord
	if input != "" {
		records, err = output.ReadProductsCSV(input)
		if err != nil {
			return err
		}
		log.Info("loaded training data", "path", input, "records", len(records))
	} else {
		s := scraper.New(cfg.Scraper, log)
		records, err = s.Search(ctx, cfg.Scan.Query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
	}
	if len(records) == 0 {
		return model.ErrNoTrainingData
	}

	var opts []pipeline.Option
	if cfg.Scan.ReferenceTable != "" {
		cat, catErr := catalog.Load(cfg.Scan.ReferenceTable, log)
		if catErr != nil {
			return catErr
		}
		opts = append(opts, pipeline.WithCatalog(cat))
	}

	classifier := model.NewClassifier(log)
	analyzer := pipeline.NewAnalyzer(classifier, heuristics.DefaultVocabularies(), log, opts...)

	report, err := analyzer.Train(records)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	if err := classifier.Save(cfg.Scan.ModelPath); err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Amostras", "Validação", "Acurácia", "Classes"})
	t.AppendRow(table.Row{
		report.Samples,
		report.HoldoutSamples,
		fmt.Sprintf("%.1f%%", report.Accuracy*100),
		len(report.Classes),
	})
	t.Render()
	fmt.Printf("Modelo salvo em %s\n", cfg.Scan.ModelPath)
	return nil
}
