// =============================================================================
// GRIR Report Toolkit - Notification Dispatch
// =============================================================================
//
// Sends the per-plant digest emails with the plant's formatted report
// attached. Transport failures are strictly per-recipient: one plant's
// unreachable mailbox never blocks the remaining plants, and the run as a
// whole still succeeds with the failures reported as a list.
//
// =============================================================================

package mail

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/jordaannt/GRIR-Project/internal/config"
)

// Notification is one plant's outgoing email.
type Notification struct {
	Plant          string
	To             string
	CC             string
	Subject        string
	HTMLBody       string
	AttachmentPath string
}

// DispatchError records a single failed delivery.
type DispatchError struct {
	Recipient string
	Plant     string
	Err       error
}

func (e DispatchError) Error() string {
	return fmt.Sprintf("failed to send to %s (plant %s): %v", e.Recipient, e.Plant, e.Err)
}

// Mailer dispatches notifications over SMTP with STARTTLS.
type Mailer struct {
	log    *zap.SugaredLogger
	sender string

	// send delivers one assembled message; tests replace it.
	send func(*gomail.Message) error
}

// New creates a Mailer using the configured SMTP transport.
func New(log *zap.SugaredLogger, smtp config.SMTPConfig) *Mailer {
	dialer := gomail.NewDialer(smtp.Host, smtp.Port, smtp.Sender, smtp.Password)
	return &Mailer{
		log:    log,
		sender: smtp.Sender,
		send:   func(m *gomail.Message) error { return dialer.DialAndSend(m) },
	}
}

// Dispatch sends every notification, collecting per-recipient failures.
// A nil return means every delivery succeeded.
func (m *Mailer) Dispatch(notifications []Notification) []DispatchError {
	var failures []DispatchError

	for _, n := range notifications {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.sender)
		msg.SetHeader("To", n.To)
		if n.CC != "" {
			msg.SetHeader("Cc", n.CC)
		}
		msg.SetHeader("Subject", n.Subject)
		msg.SetBody("text/html", n.HTMLBody)
		if n.AttachmentPath != "" {
			msg.Attach(n.AttachmentPath)
		}

		if err := m.send(msg); err != nil {
			failures = append(failures, DispatchError{Recipient: n.To, Plant: n.Plant, Err: err})
			m.log.Errorw("dispatch failed", "recipient", n.To, "plant", n.Plant, "error", err)
			continue
		}
		m.log.Infow("sent notification", "recipient", n.To, "plant", n.Plant, "cc", n.CC)
	}

	return failures
}

// Subject builds the notification subject line for a plant.
func Subject(plant, monthName string) string {
	return fmt.Sprintf("GRIR Report – %s – %s", plant, monthName)
}

// HTMLBody wraps a plant digest into the full email body.
func HTMLBody(digest string) string {
	return fmt.Sprintf("<html><body>%s<p><i>Attached is the full GRIR report for your plant.</i></p></body></html>", digest)
}
