package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	service "academix_backend/internals/features/billing/jobs/service"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Generate the monthly payment obligations",
	Long: `Creates one pending payment per active enrollment whose program has a
monthly fee, due on the 5th of the target month. Enrollments that already
have an obligation for that due date are skipped, so the job is safe to
re-run.`,
	Example: `  # Generate for next month (default)
  jobs monthly

  # Generate for a specific month
  jobs monthly --month 2026-09`,
	RunE: runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
	monthlyCmd.Flags().String("month", "", "Target month as YYYY-MM (default: next month)")
}

func runMonthly(cmd *cobra.Command, args []string) error {
	month, _ := cmd.Flags().GetString("month")

	db := openDB()
	svc := service.NewMonthlyGeneratorService(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	summary, err := svc.Run(ctx, uuid.Nil, month)
	if err != nil {
		return err
	}
	return printSummary(summary)
}
