package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"academix_backend/internals/configs"
	"academix_backend/internals/features/billing/audit"
	"academix_backend/internals/features/billing/gateway"
	service "academix_backend/internals/features/billing/jobs/service"
	"academix_backend/internals/features/billing/notifier"
)

// systemActor marks scheduler-originated writes in the audit trail.
var systemActor = uuid.Nil

// StartBillingScheduler runs the daily billing jobs in a background loop.
// Each cycle runs the window sweep, the past-due catch-all, the recurring
// charge processor, and the payment reminders. Job errors are logged and
// never stop the loop.
func StartBillingScheduler(db *gorm.DB, n notifier.Notifier) {
	rec := audit.NewRecorder(db)
	sweeper := service.NewOverdueSweeperService(db, rec)
	recurring := service.NewRecurringProcessorService(db, gateway.NewClient(configs.Gateway), rec)
	reminders := service.NewReminderService(db, n)

	go func() {
		log.Println("[SCHEDULER] billing scheduler started")
		for {
			runOnce(sweeper, recurring, reminders)
			time.Sleep(nextRunIn(time.Now()))
		}
	}()
}

func runOnce(sweeper *service.OverdueSweeperService, recurring *service.RecurringProcessorService, reminders *service.ReminderService) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	now := time.Now()

	if sum, err := sweeper.SweepWindow(ctx, systemActor, now); err != nil {
		log.Println("[SCHEDULER ERROR] window sweep:", err)
	} else if sum.GuardActive {
		log.Println("[SCHEDULER] window sweep skipped: before day 6")
	} else {
		log.Printf("[SCHEDULER] window sweep: swept=%d suspended=%d failed=%d", sum.Swept, sum.Suspended, sum.Failed)
	}

	if sum, err := sweeper.SweepPastDue(ctx, systemActor, now); err != nil {
		log.Println("[SCHEDULER ERROR] past-due sweep:", err)
	} else {
		log.Printf("[SCHEDULER] past-due sweep: swept=%d", sum.Swept)
	}

	if sum, err := recurring.Run(ctx, systemActor, false); err != nil {
		log.Println("[SCHEDULER ERROR] recurring charges:", err)
	} else {
		log.Printf("[SCHEDULER] recurring charges: candidates=%d charged=%d failed=%d skipped=%d",
			sum.Candidates, sum.Charged, sum.Failed, sum.Skipped)
	}

	if sum, err := reminders.Run(ctx, service.DefaultReminderLeadDays); err != nil {
		log.Println("[SCHEDULER ERROR] reminders:", err)
	} else {
		log.Printf("[SCHEDULER] reminders: candidates=%d sent=%d failed=%d", sum.Candidates, sum.Sent, sum.Failed)
	}
}

// nextRunIn returns the duration until the next run at 02:00 local time.
func nextRunIn(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 2, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
