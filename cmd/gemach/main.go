package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/sh5616107/gemach-management-system-sub001/internal/config"
	"github.com/sh5616107/gemach-management-system-sub001/internal/domain"
	"github.com/sh5616107/gemach-management-system-sub001/internal/masav"
	"github.com/sh5616107/gemach-management-system-sub001/internal/service"
	"github.com/sh5616107/gemach-management-system-sub001/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	st, err := store.Open(cfg.DataFile, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open ledger")
	}

	guarantors := service.NewGuarantorService(st, log.Logger)
	maintenance := service.NewMaintenanceService(st, guarantors, log.Logger)
	clearing := service.NewClearingService(st, cfg.Masav, log.Logger)

	cmd := "maintenance"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "maintenance":
		runMaintenance(maintenance)
	case "clearing":
		runClearing(cfg, clearing, args)
	case "summary":
		printSummary(st)
	default:
		fmt.Fprintf(os.Stderr, "usage: gemach [maintenance|clearing|summary]\n")
		os.Exit(2)
	}
}

func runMaintenance(maintenance *service.MaintenanceService) {
	res, err := maintenance.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("maintenance pass failed")
	}
	fmt.Printf("recurring deposits created: %d\n", len(res.CreatedDeposits))
	fmt.Printf("recurring loans created:    %d\n", len(res.CreatedLoans))
	fmt.Printf("overdue guarantor debts:    %d\n", len(res.OverdueDebts))
	for _, d := range res.OverdueDebts {
		fmt.Printf("  debt %d (guarantor %d, loan %d)\n", d.ID, d.GuarantorID, d.OriginalLoanID)
	}
}

func runClearing(cfg *config.Config, clearing *service.ClearingService, args []string) {
	fs := flag.NewFlagSet("clearing", flag.ExitOnError)
	date := fs.String("date", "", "charge date, YYYY-MM-DD")
	serial := fs.Int("serial", 1, "per-day file serial")
	loans := fs.String("loans", "", "comma-separated loan ids to charge")
	outDir := fs.String("out", ".", "output directory")
	fs.Parse(args)

	chargeDate, err := time.Parse("2006-01-02", *date)
	if err != nil {
		log.Fatal().Str("date", *date).Msg("charge date must be YYYY-MM-DD")
	}
	var loanIDs []int64
	for _, part := range strings.Split(*loans, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Fatal().Str("loan", part).Msg("loan id must be numeric")
		}
		loanIDs = append(loanIDs, id)
	}

	file, err := clearing.BuildFile(cfg.Settings, chargeDate, *serial, loanIDs)
	if err != nil {
		log.Fatal().Err(err).Msg("clearing file build failed")
	}
	path, err := masav.WriteFile(*outDir, file.ChargeDate, *serial, file.Content, false)
	if err != nil {
		log.Fatal().Err(err).Msg("clearing file write failed")
	}
	fmt.Printf("%s: %d records, total %s\n", path, file.RecordCount, file.TotalAmount)
}

func printSummary(st *store.Store) {
	snap := st.Snapshot()
	outstanding := decimal.Zero
	for _, l := range snap.Loans {
		if l.IsLive() {
			outstanding = outstanding.Add(domain.LoanBalance(l, snap.Payments))
		}
	}
	held := decimal.Zero
	for _, d := range snap.Deposits {
		held = held.Add(domain.DepositBalance(d, snap.Withdrawals))
	}
	guaranteed := decimal.Zero
	for _, d := range snap.GuarantorDebts {
		if d.Status != domain.DebtStatusPaid {
			guaranteed = guaranteed.Add(domain.DebtBalance(d, snap.Payments))
		}
	}
	fmt.Printf("borrowers:   %d\n", len(snap.Borrowers))
	fmt.Printf("loans:       %d (outstanding %s)\n", len(snap.Loans), outstanding)
	fmt.Printf("deposits:    %d (held %s)\n", len(snap.Deposits), held)
	fmt.Printf("donations:   %d\n", len(snap.Donations))
	fmt.Printf("guarantors:  %d (guaranteed %s)\n", len(snap.Guarantors), guaranteed)
}
