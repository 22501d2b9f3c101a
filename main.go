package main

import (
	"fmt"
	"os"

	"comp-valuation/config"
	"comp-valuation/fetch"
	"comp-valuation/ingest"
	"comp-valuation/models"
	"comp-valuation/services"
	"comp-valuation/storage"
	"comp-valuation/utils"
	"comp-valuation/valuation"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Sales Comparison Valuation starting ===")
	logger.Info("Config — input: %s | concurrency: %d | rate: %dms",
		cfg.InputJSONPath, cfg.MaxConcurrency, cfg.RateLimitMs)

	costs, policy, err := cfg.CostModel()
	if err != nil {
		logger.Error("Failed to load cost model overrides: %v", err)
		os.Exit(1)
	}
	logger.Info("Policy — line cap: %.0f%% | total cap: %.0f%%",
		policy.LineCapPct*100, policy.TotalCapPct*100)

	loader := ingest.NewLoader(logger)
	subject, comps, err := acquire(cfg, loader, logger)
	if err != nil {
		logger.Error("Failed to acquire property records: %v", err)
		os.Exit(1)
	}

	if len(comps) == 0 {
		logger.Error("No comparables available. Exiting.")
		os.Exit(1)
	}

	engine := valuation.NewEngine(policy, costs)

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath, engine.Categories())
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure the database is up and POSTGRES_* is set")
		os.Exit(1)
	}
	defer pgWriter.Close()

	logger.Info("Running adjustment engine over %d comparables...", len(comps))
	grid, summary := engine.Run(subject, comps)

	run := storage.NewRun(subject.Address, grid, summary)
	logger.Info("Run %s complete", run.ID)

	if err := csvWriter.WriteRun(run); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Adjustment grid saved to %s", cfg.CSVOutputPath)
	}

	if err := pgWriter.WriteRun(run); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
	} else {
		logger.Info("Run stored in PostgreSQL (tables: valuation_runs, valuation_grid_rows)")
	}

	reportSvc := services.NewReportService(logger)
	report := reportSvc.Generate(grid, summary)
	reportSvc.Print(report)

	fmt.Printf("  Done. Grid → %s | Run %s → PostgreSQL\n\n", cfg.CSVOutputPath, run.ID)
}

// acquire produces the canonical subject + comparables: straight from a
// local canonical JSON file, or via the property API when a token is
// configured (the input file then lists the addresses to fetch).
func acquire(cfg *config.Config, loader *ingest.Loader, logger *utils.Logger) (*models.PropertyRecord, []*models.PropertyRecord, error) {
	if cfg.APIToken == "" {
		logger.Info("No API token configured — loading canonical records from %s", cfg.InputJSONPath)
		return loader.LoadFile(cfg.InputJSONPath)
	}

	requests, err := fetch.LoadRequests(cfg.InputJSONPath)
	if err != nil {
		return nil, nil, err
	}

	client := fetch.New(cfg, logger)
	payload, err := client.FetchAll(requests)
	if err != nil {
		return nil, nil, err
	}
	return loader.Normalize(payload)
}
