package main

import (
	"context"
	"log"
	"os"

	"store-inventory/config"
	"store-inventory/internal/export"
	"store-inventory/internal/ingest"
	"store-inventory/internal/service"
	"store-inventory/internal/shell"
	"store-inventory/internal/store"
	"store-inventory/internal/util"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := util.InitLogger(cfg.App.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting store inventory")

	db, err := store.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	loader := ingest.NewLoader(db)
	n, err := loader.LoadCSV(ctx, cfg.Files.InventoryCSV)
	if err != nil {
		log.Fatalf("Failed to load inventory: %v", err)
	}
	logger.Info("Inventory loaded", zap.Int("rows", n))

	inventory := service.NewInventoryService(db)
	exporter := export.NewExporter(db)

	sh := shell.New(inventory, exporter, cfg.Files.BackupCSV, os.Stdin, os.Stdout)
	if err := sh.Run(ctx); err != nil {
		log.Fatalf("Shell error: %v", err)
	}
}
