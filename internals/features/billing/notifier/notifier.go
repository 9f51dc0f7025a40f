// Package notifier delivers billing emails. Delivery is best effort: a
// failed send is logged by the caller and never aborts a financial operation.
package notifier

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"academix_backend/internals/configs"
)

// Notifier is the outbound messaging collaborator consumed by the ledger and
// the reminder job.
type Notifier interface {
	SendReminder(to, recipientName, studentName, concept string, amount int64, dueDate time.Time, daysUntilDue int) error
	SendConfirmation(to, studentName, concept string, amount int64, paidAt time.Time) error
}

// MailNotifier sends over SMTP.
type MailNotifier struct {
	cfg configs.SMTPConfig
}

func NewMailNotifier(cfg configs.SMTPConfig) *MailNotifier {
	return &MailNotifier{cfg: cfg}
}

func (n *MailNotifier) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.cfg.From, "Academix"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.Username, n.cfg.Password)
	return d.DialAndSend(m)
}

func (n *MailNotifier) SendReminder(to, recipientName, studentName, concept string, amount int64, dueDate time.Time, daysUntilDue int) error {
	subject := fmt.Sprintf("Payment reminder: %s due %s", concept, dueDate.Format("2006-01-02"))
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; font-family: Arial, sans-serif; background-color: #f7f9fc;">
	<p>Hello %s,</p>
	<p>This is a reminder that the payment <strong>%s</strong> for %s
	(amount <strong>$%d COP</strong>) is due in %d day(s), on %s.</p>
	<p>If you have already paid, please disregard this message.</p>
	<p>— Academix administration</p>
</body>
</html>`, recipientName, concept, studentName, amount, daysUntilDue, dueDate.Format("2006-01-02"))
	return n.send(to, subject, body)
}

func (n *MailNotifier) SendConfirmation(to, studentName, concept string, amount int64, paidAt time.Time) error {
	subject := fmt.Sprintf("Payment received: %s", concept)
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; font-family: Arial, sans-serif; background-color: #f7f9fc;">
	<p>Hello,</p>
	<p>We received the payment <strong>%s</strong> for %s
	(amount <strong>$%d COP</strong>) on %s. Thank you.</p>
	<p>— Academix administration</p>
</body>
</html>`, concept, studentName, amount, paidAt.Format("2006-01-02 15:04"))
	return n.send(to, subject, body)
}
