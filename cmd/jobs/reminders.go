package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"academix_backend/internals/configs"
	service "academix_backend/internals/features/billing/jobs/service"
	"academix_backend/internals/features/billing/notifier"
)

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "Email payment reminders for upcoming due dates",
	Long: `Sends a reminder email for every pending payment due exactly N days from
today. The guardian on record is the primary recipient; the student is
copied when their email differs.`,
	RunE: runReminders,
}

func init() {
	rootCmd.AddCommand(remindersCmd)
	remindersCmd.Flags().Int("days", service.DefaultReminderLeadDays, "Days before the due date to send the reminder")
}

func runReminders(cmd *cobra.Command, args []string) error {
	days, _ := cmd.Flags().GetInt("days")

	db := openDB()
	svc := service.NewReminderService(db, notifier.NewMailNotifier(configs.SMTP))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	summary, err := svc.Run(ctx, days)
	if err != nil {
		return err
	}
	return printSummary(summary)
}
