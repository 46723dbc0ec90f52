package main

import (
	"fmt"
	"os"

	"flight-tracker/config"
	"flight-tracker/scraper/gflights"
	"flight-tracker/services"
	"flight-tracker/storage"
	"flight-tracker/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLeveledLogger(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Flight Price Tracker starting ===")
	logger.Info("Config — route: %s → %s | backend: %s | history window: %dd | assist: %ds",
		cfg.Origin, cfg.Destination, cfg.StorageBackend, cfg.HistoryWindowDays, cfg.SearchAssistSeconds)

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to open %s store: %v", cfg.StorageBackend, err)
		os.Exit(1)
	}
	defer store.Close()

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	capturer := gflights.New(cfg, logger)
	snapshot, err := capturer.Capture()
	if err != nil {
		logger.Error("Snapshot capture failed: %v", err)
		os.Exit(1)
	}

	pipeline := services.NewPipeline(logger)
	records := pipeline.Extract(snapshot)
	if len(records) == 0 {
		logger.Error("No flight listings extracted. Exiting.")
		os.Exit(1)
	}

	logger.Info("Extracted %d flight records", len(records))

	search, err := store.CreateSearch(cfg.Origin, cfg.Destination, cfg.DepartureDate, cfg.ReturnDate)
	if err != nil {
		logger.Error("Failed to create search record: %v", err)
		os.Exit(1)
	}

	if err := csvWriter.WriteRaw(search, records); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Raw records saved to %s", cfg.CSVOutputPath)
	}

	count, err := store.SaveFlights(search.ID, records)
	if err != nil {
		logger.Error("Persisting flights failed: %v", err)
	} else {
		logger.Info("Stored %d flights under search #%d", count, search.ID)
	}

	reportSvc := services.NewReportService(logger)
	report := reportSvc.Generate(cfg.Origin, cfg.Destination, records)
	reportSvc.Print(report)

	history, err := store.PriceHistory(cfg.Origin, cfg.Destination, cfg.HistoryWindowDays)
	if err != nil {
		logger.Error("Price history query failed: %v", err)
	} else {
		reportSvc.PrintHistory(cfg.Origin, cfg.Destination, history)
	}

	fmt.Printf("  Done. Raw CSV → %s | History → %s backend\n\n",
		cfg.CSVOutputPath, cfg.StorageBackend)
}

func openStore(cfg *config.Config) (storage.FlightStore, error) {
	if cfg.StorageBackend == "postgres" {
		return storage.NewPostgresStore(cfg.DSN())
	}
	return storage.NewSQLiteStore(cfg.SQLitePath)
}
