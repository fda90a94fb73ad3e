package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/smartject/smartject/internal/cli"
	"github.com/smartject/smartject/internal/config"
	"github.com/smartject/smartject/internal/db"
	"github.com/smartject/smartject/internal/repository"
	"github.com/smartject/smartject/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// SMARTJECT_DB wins over the config file, for scripts and tests.
	dbPath := os.Getenv("SMARTJECT_DB")
	if dbPath == "" {
		dbPath = cfg.DBPath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	smartjectRepo := repository.NewSQLiteSmartjectRepo(database)
	proposalRepo := repository.NewSQLiteProposalRepo(database)
	milestoneRepo := repository.NewSQLiteMilestoneRepo(database)
	contractRepo := repository.NewSQLiteContractRepo(database)
	negotiationRepo := repository.NewSQLiteNegotiationRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	symbol := cfg.Schedule.CurrencySymbol
	months := cfg.Schedule.DefaultTimelineMonths

	app := &cli.App{
		Smartjects:  service.NewSmartjectService(smartjectRepo),
		Proposals:   service.NewProposalService(proposalRepo, smartjectRepo, uow, months),
		Milestones:  service.NewMilestoneService(milestoneRepo, proposalRepo, uow, symbol, months),
		Contracts:   service.NewContractService(contractRepo, proposalRepo, smartjectRepo, milestoneRepo, uow, months),
		Negotiation: service.NewNegotiationService(negotiationRepo, proposalRepo, uow),

		Actor:  cfg.Actor(),
		Symbol: symbol,
	}

	return cli.NewRootCmd(app).Execute()
}
