package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/ashwin/ledgerpad/internal/advisor"
	"github.com/ashwin/ledgerpad/internal/auth"
	"github.com/ashwin/ledgerpad/internal/config"
	"github.com/ashwin/ledgerpad/internal/export"
	"github.com/ashwin/ledgerpad/internal/logging"
	"github.com/ashwin/ledgerpad/internal/service"
	"github.com/ashwin/ledgerpad/internal/tui"
	"github.com/ashwin/ledgerpad/internal/vault"
)

func main() {
	ctx := context.Background()

	// optional .env for OPENROUTER_API_KEY and friends
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = filepath.Join(cfg.Data.Dir, "ledgerpad.log")
	}
	logger, closeLog, err := logging.OpenFile(logPath, logging.ParseLevel(cfg.Log.Level))
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer closeLog()

	v, err := vault.Open(cfg.Data.Dir)
	if err != nil {
		log.Fatalf("open data dir: %v", err)
	}

	session := auth.NewSession(v.Credentials())

	rules, err := service.LoadRules(cfg.Data.Rules)
	if err != nil {
		log.Fatalf("load categorization rules: %v", err)
	}

	ledgerSvc := &service.LedgerService{Store: v.Ledger(), Session: session}
	budgetSvc := &service.BudgetService{Limits: v.Budgets(), Ledger: ledgerSvc, Rules: rules}
	services := tui.Services{
		Ledger:   ledgerSvc,
		Budget:   budgetSvc,
		Search:   &service.SearchService{Ledger: ledgerSvc, Categorize: budgetSvc.Categorize},
		Exporter: &export.Exporter{Dir: cfg.UI.ExportDir, Logger: logger},
	}

	chat := advisor.NewClient(cfg.APIKey(), cfg.Advisor.Model, logger)

	logger.Info("starting", "data_dir", cfg.Data.Dir)

	p := tea.NewProgram(tui.New(ctx, cfg, session, services, chat, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
