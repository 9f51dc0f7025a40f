// Command jobs runs the billing batch jobs from the command line, for cron
// and one-off operator use. Each subcommand prints a JSON summary and exits
// non-zero when the job itself failed to run.
package main

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"academix_backend/internals/configs"
	database "academix_backend/internals/databases"
	"academix_backend/internals/logger"
)

var rootCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Billing batch jobs for the back office",
	Long: `Runs the billing batch jobs outside the HTTP server: monthly obligation
generation, overdue sweeps, recurring card charges, and payment reminders.

Per-record failures are reported in the summary and do not change the exit
status. A non-zero exit means the job itself could not run.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configs.LoadEnv()
		return logger.Setup(logger.LogConfig{
			Level:  configs.GetEnv("LOG_LEVEL", "info"),
			Format: configs.GetEnv("LOG_FORMAT", "console"),
		})
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openDB connects and tunes the shared pool for a single job run.
func openDB() *gorm.DB {
	database.ConnectDB()
	database.TunePool()
	return database.DB
}

func printSummary(v any) error {
	out, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
