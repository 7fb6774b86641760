// Command ingest is the HYROX results ingestion CLI.
//
// Usage:
//
//	hyrox-ingest transform --input hyrox_results.csv --output hyrox_data.ndjson
//	hyrox-ingest load --input hyrox_results.csv
//	hyrox-ingest summary --input hyrox_results.csv --json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hyroxlab/hyrox-data/internal/config"
	"github.com/hyroxlab/hyrox-data/internal/db"
	"github.com/hyroxlab/hyrox-data/internal/pipeline"
	"github.com/hyroxlab/hyrox-data/internal/report"
	"github.com/hyroxlab/hyrox-data/internal/source"
	"github.com/hyroxlab/hyrox-data/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "hyrox-ingest",
		Short: "HYROX results ingestion CLI",
	}

	root.AddCommand(transformCmd())
	root.AddCommand(loadCmd())
	root.AddCommand(summaryCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// transform command
// --------------------------------------------------------------------------

func transformCmd() *cobra.Command {
	var input, output string
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Transform the flat export into NDJSON documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				in, out := pick(input, cfg.InputPath), pick(output, cfg.OutputPath)

				start := time.Now()
				docs, result, err := transform(in, cfg)
				if err != nil {
					return err
				}

				if err := writeDocs(out, docs); err != nil {
					return err
				}
				logger.Info("Transform finished",
					"input", in, "output", out,
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Input CSV path (default from HYROX_INPUT)")
	cmd.Flags().StringVar(&output, "output", "", "Output NDJSON path, - for stdout (default from HYROX_OUTPUT)")
	return cmd
}

// --------------------------------------------------------------------------
// load command
// --------------------------------------------------------------------------

func loadCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Transform the flat export and store documents in Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				in := pick(input, cfg.InputPath)

				docs, result, err := transform(in, cfg)
				if err != nil {
					return err
				}

				pool, err := db.New(ctx, cfg)
				if err != nil {
					return fmt.Errorf("connect to database: %w", err)
				}
				defer pool.Close()

				if err := store.EnsureSchema(ctx, pool.Pool); err != nil {
					return err
				}

				start := time.Now()
				batchID, err := store.InsertDocuments(ctx, pool.Pool, docs, logger)
				if err != nil {
					return fmt.Errorf("insert documents: %w", err)
				}
				logger.Info("Load finished",
					"input", in, "batch_id", batchID,
					"documents", len(docs),
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Input CSV path (default from HYROX_INPUT)")
	return cmd
}

// --------------------------------------------------------------------------
// summary command
// --------------------------------------------------------------------------

func summaryCmd() *cobra.Command {
	var input string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the diagnostic dataset report",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				in := pick(input, cfg.InputPath)

				rows, err := source.ReadFile(in)
				if err != nil {
					return err
				}
				corrections, err := config.LoadCorrections(cfg.CorrectionsFile)
				if err != nil {
					return err
				}
				enriched, _ := pipeline.Run(rows, corrections)
				s := report.Build(enriched)

				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(s)
				}
				fmt.Fprint(cmd.OutOrStdout(), s.Text())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Input CSV path (default from HYROX_INPUT)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the report as JSON")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// run handles config loading and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return fn(ctx, cfg)
}

// transform runs the full pipeline over one input file.
func transform(input string, cfg *config.Config) ([]pipeline.Document, pipeline.Result, error) {
	corrections, err := config.LoadCorrections(cfg.CorrectionsFile)
	if err != nil {
		return nil, pipeline.Result{}, err
	}

	rows, err := source.ReadFile(input)
	if err != nil {
		return nil, pipeline.Result{}, err
	}

	enriched, result := pipeline.Run(rows, corrections)
	return pipeline.BuildDocuments(enriched), result, nil
}

// writeDocs writes the NDJSON stream to a file or stdout. The file is only
// created after the transform succeeded, so a failed run leaves no partial
// output behind.
func writeDocs(output string, docs []pipeline.Document) error {
	var w io.Writer
	if output == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := pipeline.WriteNDJSON(w, docs); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}

// pick prefers the flag value over the configured default.
func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
