package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"academix_backend/internals/configs"
	"academix_backend/internals/features/billing/audit"
	"academix_backend/internals/features/billing/gateway"
	service "academix_backend/internals/features/billing/jobs/service"
)

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Charge the saved cards of recurring payers",
	Long: `Selects completed recurring base payments with a stored card token whose
next charge date has arrived and charges each through the card gateway.
Successful charges produce a child pending payment and push the next charge
date 30 days out. Failures increment the attempt counter; at 3 failed
attempts auto-charging is suspended for that payer.`,
	Example: `  # Report what would be charged, without calling the gateway
  jobs recurring --dry-run

  # Charge for real
  jobs recurring`,
	RunE: runRecurring,
}

func init() {
	rootCmd.AddCommand(recurringCmd)
	recurringCmd.Flags().Bool("dry-run", false, "Select and project only, no gateway calls or writes")
}

func runRecurring(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	db := openDB()
	svc := service.NewRecurringProcessorService(db, gateway.NewClient(configs.Gateway), audit.NewRecorder(db))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	summary, err := svc.Run(ctx, uuid.Nil, dryRun)
	if err != nil {
		return err
	}
	return printSummary(summary)
}
