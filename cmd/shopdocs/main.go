package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/handyzentrum/shopdocs/internal/config"
	"github.com/handyzentrum/shopdocs/internal/db"
	"github.com/handyzentrum/shopdocs/internal/excel"
	"github.com/handyzentrum/shopdocs/internal/export"
	"github.com/handyzentrum/shopdocs/internal/ledger"
	"github.com/handyzentrum/shopdocs/internal/logger"
	"github.com/handyzentrum/shopdocs/internal/numbering"
	"github.com/handyzentrum/shopdocs/internal/pdf"
	"github.com/handyzentrum/shopdocs/internal/repository"
	"github.com/handyzentrum/shopdocs/internal/service"
)

var version = "1.0.0"

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:     "shopdocs",
		Short:   "Sales contract and receipt generator for the shop counter",
		Version: version,
	}
	root.AddCommand(newServeCmd(), newExportCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired services shared by the commands.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	contracts *service.ContractService
	receipts  *service.ReceiptService
}

func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	repo := repository.NewContractRepository(database)
	exporter := export.NewExporter(repo, excel.NewGenerator())
	allocator := numbering.New(cfg.Paths.CounterPath)
	renderer := pdf.NewGenerator(cfg.Company)
	csvLedger := ledger.NewCSVLedger(cfg.Paths.LedgerPath)

	contracts := service.NewContractService(
		allocator, renderer, csvLedger, repo, exporter, cfg.Paths.ContractsDir, log,
	)
	receipts := service.NewReceiptService(allocator, renderer, cfg.Paths.DataDir, log)

	return &app{
		cfg:       cfg,
		log:       log,
		contracts: contracts,
		receipts:  receipts,
	}, nil
}
