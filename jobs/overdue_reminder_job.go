package jobs

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/anjiri1684/studio_tracker/models"
	"github.com/anjiri1684/studio_tracker/notifications"
	"github.com/anjiri1684/studio_tracker/utils"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// ReminderStore is the storage the overdue reminder reads from.
type ReminderStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetOverduePayments(ctx context.Context, instructorID uuid.UUID) ([]models.PaymentWithStudent, error)
}

// OverdueReminder emails every instructor a digest of their overdue payments.
type OverdueReminder struct {
	store   ReminderStore
	mailer  notifications.Mailer
	timeout time.Duration
}

func NewOverdueReminder(store ReminderStore, mailer notifications.Mailer) *OverdueReminder {
	return &OverdueReminder{store: store, mailer: mailer, timeout: 2 * time.Minute}
}

// Schedule registers the job on c with the given cron spec.
func (j *OverdueReminder) Schedule(c *cron.Cron, spec string) error {
	_, err := c.AddFunc(spec, j.Run)
	if err != nil {
		return fmt.Errorf("schedule overdue reminder: %w", err)
	}
	utils.Logger.WithField("spec", spec).Info("✅ Cron job for overdue reminders scheduled successfully.")
	return nil
}

func (j *OverdueReminder) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	sent, err := j.RunOnce(ctx)
	if err != nil {
		utils.Logger.WithError(err).Error("🔥 overdue reminder job failed")
		return
	}
	utils.Logger.Infof("Sent %d overdue reminder(s).", sent)
}

// RunOnce sends the reminders and returns how many emails went out. A failed
// email is logged and does not stop the others.
func (j *OverdueReminder) RunOnce(ctx context.Context) (int, error) {
	utils.Logger.Info("Running job: OverdueReminder...")

	users, err := j.store.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list instructors: %w", err)
	}

	sent := 0
	for _, user := range users {
		if user.Email == nil || *user.Email == "" {
			continue
		}
		overdue, err := j.store.GetOverduePayments(ctx, user.ID)
		if err != nil {
			return sent, fmt.Errorf("overdue payments for %s: %w", user.ID, err)
		}
		if len(overdue) == 0 {
			continue
		}

		subject := fmt.Sprintf("You have %d overdue payment(s)", len(overdue))
		if err := j.mailer.Send(ctx, *user.Email, displayName(user), subject, overdueDigest(overdue)); err != nil {
			utils.Logger.WithError(err).WithField("instructor_id", user.ID).Warn("failed to send overdue reminder")
			continue
		}
		sent++
	}
	return sent, nil
}

func displayName(u models.User) string {
	var parts []string
	if u.FirstName != nil {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil {
		parts = append(parts, *u.LastName)
	}
	return strings.Join(parts, " ")
}

func overdueDigest(payments []models.PaymentWithStudent) string {
	var b strings.Builder
	b.WriteString("<h1>Overdue Payments</h1><p>The following payments are past their due date:</p><ul>")
	for _, p := range payments {
		fmt.Fprintf(&b, "<li><b>%s</b>: %s (%s) due %s</li>",
			html.EscapeString(p.Student.Name), p.Amount.String(), html.EscapeString(p.PaymentType), p.DueDate)
	}
	b.WriteString("</ul>")
	return b.String()
}
