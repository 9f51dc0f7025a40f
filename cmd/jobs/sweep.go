package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"academix_backend/internals/features/billing/audit"
	service "academix_backend/internals/features/billing/jobs/service"
)

var sweepWindowCmd = &cobra.Command{
	Use:   "sweep-window",
	Short: "Mark window obligations overdue and suspend their enrollments",
	Long: `Transitions pending manual obligations due in the 1st-5th window of the
current month to overdue and suspends the linked active enrollments. The
job refuses to run before the 6th of the month so families keep the full
grace window.`,
	RunE: runSweepWindow,
}

var sweepPastDueCmd = &cobra.Command{
	Use:   "sweep-overdue",
	Short: "Mark any past-due pending payment overdue",
	Long: `Catch-all sweep: transitions every pending payment whose due date has
passed to overdue. Unlike sweep-window it has no enrollment cascade and no
day-of-month guard.`,
	RunE: runSweepPastDue,
}

func init() {
	rootCmd.AddCommand(sweepWindowCmd)
	rootCmd.AddCommand(sweepPastDueCmd)
}

func runSweepWindow(cmd *cobra.Command, args []string) error {
	db := openDB()
	svc := service.NewOverdueSweeperService(db, audit.NewRecorder(db))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	summary, err := svc.SweepWindow(ctx, uuid.Nil, time.Now())
	if err != nil {
		return err
	}
	return printSummary(summary)
}

func runSweepPastDue(cmd *cobra.Command, args []string) error {
	db := openDB()
	svc := service.NewOverdueSweeperService(db, audit.NewRecorder(db))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	summary, err := svc.SweepPastDue(ctx, uuid.Nil, time.Now())
	if err != nil {
		return err
	}
	return printSummary(summary)
}
