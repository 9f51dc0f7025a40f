package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"academix_backend/internals/features/billing/errs"
	service "academix_backend/internals/features/billing/jobs/service"
	helper "academix_backend/internals/helpers"
)

// JobsController exposes the batch jobs as operator-triggered endpoints. The
// HTTP status reflects overall job health: per-record failures are counts in
// the summary, not errors.
type JobsController struct {
	DB        *gorm.DB
	Monthly   *service.MonthlyGeneratorService
	Sweeper   *service.OverdueSweeperService
	Recurring *service.RecurringProcessorService
	Reminders *service.ReminderService
}

func NewJobsController(db *gorm.DB, monthly *service.MonthlyGeneratorService, sweeper *service.OverdueSweeperService, recurring *service.RecurringProcessorService, reminders *service.ReminderService) *JobsController {
	return &JobsController{
		DB:        db,
		Monthly:   monthly,
		Sweeper:   sweeper,
		Recurring: recurring,
		Reminders: reminders,
	}
}

// POST /api/a/billing/jobs/monthly?month=YYYY-MM
func (h *JobsController) RunMonthly(c *fiber.Ctx) error {
	actorID, err := helper.GetActorIDFromToken(c)
	if err != nil {
		return err
	}

	summary, err := h.Monthly.Run(c.UserContext(), actorID, c.Query("month"))
	if err != nil {
		return jobErrorToHTTP(err)
	}
	return helper.JsonOK(c, "monthly obligations generated", summary)
}

// POST /api/a/billing/jobs/sweep-window
func (h *JobsController) RunSweepWindow(c *fiber.Ctx) error {
	actorID, err := helper.GetActorIDFromToken(c)
	if err != nil {
		return err
	}

	summary, err := h.Sweeper.SweepWindow(c.UserContext(), actorID, time.Now())
	if err != nil {
		return jobErrorToHTTP(err)
	}
	msg := "window sweep finished"
	if summary.GuardActive {
		msg = "window sweep skipped: runs only from day 6 onward"
	}
	return helper.JsonOK(c, msg, summary)
}

// POST /api/a/billing/jobs/sweep-overdue
func (h *JobsController) RunSweepPastDue(c *fiber.Ctx) error {
	actorID, err := helper.GetActorIDFromToken(c)
	if err != nil {
		return err
	}

	summary, err := h.Sweeper.SweepPastDue(c.UserContext(), actorID, time.Now())
	if err != nil {
		return jobErrorToHTTP(err)
	}
	return helper.JsonOK(c, "past-due sweep finished", summary)
}

// POST /api/a/billing/jobs/recurring?dry_run=true
func (h *JobsController) RunRecurring(c *fiber.Ctx) error {
	actorID, err := helper.GetActorIDFromToken(c)
	if err != nil {
		return err
	}

	dryRun := c.QueryBool("dry_run", false)
	summary, err := h.Recurring.Run(c.UserContext(), actorID, dryRun)
	if err != nil {
		return jobErrorToHTTP(err)
	}
	return helper.JsonOK(c, "recurring charges processed", summary)
}

// POST /api/a/billing/jobs/reminders?days=3
func (h *JobsController) RunReminders(c *fiber.Ctx) error {
	if _, err := helper.GetActorIDFromToken(c); err != nil {
		return err
	}

	days := c.QueryInt("days", service.DefaultReminderLeadDays)
	summary, err := h.Reminders.Run(c.UserContext(), days)
	if err != nil {
		return jobErrorToHTTP(err)
	}
	return helper.JsonOK(c, "reminders sent", summary)
}

func jobErrorToHTTP(err error) error {
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
