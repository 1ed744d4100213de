// Package notify delivers best-effort host notifications. Nothing in here
// may influence the outcome of the RSVP write it follows: every failure is
// logged and swallowed, delivery is at-most-once.
package notify

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"sync"
	"time"

	"rsvplink/config"
	"rsvplink/models"
)

// Notifier is the transport seam; the SMTP mailer is the real one and
// tests plug in failing fakes.
type Notifier interface {
	Send(toName, toAddr, subject, body string) error
}

// Mailer sends over plain SMTP. An unconfigured Mailer logs the message
// instead of sending; missing mail credentials must never break an RSVP.
type Mailer struct {
	conf    config.SMTPConfig
	appName string
}

func NewMailer(conf config.SMTPConfig, appName string) *Mailer {
	return &Mailer{conf: conf, appName: appName}
}

func (m *Mailer) Send(toName, toAddr, subject, body string) error {
	if !m.conf.Configured() {
		log.Printf("[notify] SMTP not configured, skipping mail to %s: %s", toAddr, subject)
		return nil
	}
	fromAddr := m.conf.From
	if fromAddr == "" {
		fromAddr = m.conf.Username
	}
	msg := buildMIME(m.appName, fromAddr, toAddr, subject, body)
	auth := smtp.PlainAuth("", m.conf.Username, m.conf.Password, m.conf.Host)
	addr := m.conf.Host + ":" + m.conf.Port
	return smtp.SendMail(addr, auth, fromAddr, []string{toAddr}, []byte(msg))
}

func buildMIME(fromName, fromAddr, to, subject, html string) string {
	headers := []string{
		fmt.Sprintf("From: %s <%s>", fromName, fromAddr),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + html
}

// HostDirectory resolves the host's contact record.
type HostDirectory interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

type Dispatcher struct {
	hosts    HostDirectory
	notifier Notifier
	timeout  time.Duration

	wg sync.WaitGroup // lets tests drain in-flight sends
}

func NewDispatcher(hosts HostDirectory, notifier Notifier, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{hosts: hosts, notifier: notifier, timeout: timeout}
}

// NotifyHost fires after the response row is durably written. It detaches
// from the request's context (the caller must not wait on delivery) and
// abandons the attempt at the timeout.
func (d *Dispatcher) NotifyHost(ev *models.Event, guestName, responseType string, guestCount int) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		host, err := d.hosts.FindUserByID(ctx, ev.HostID)
		if err != nil {
			log.Printf("[notify] host lookup failed: host=%s event=%s err=%v", ev.HostID, ev.ID, err)
			return
		}

		subject := fmt.Sprintf("New RSVP for %s", ev.Title)
		body := fmt.Sprintf(
			`<p><b>%s</b> responded <b>%s</b> to <b>%s</b> (%d guest(s)).</p>`,
			guestName, responseType, ev.Title, guestCount,
		)

		done := make(chan error, 1)
		go func() { done <- d.notifier.Send(host.DisplayName, host.Username, subject, body) }()
		select {
		case err := <-done:
			if err != nil {
				log.Printf("[notify] send failed: host=%s event=%s err=%v", ev.HostID, ev.ID, err)
			}
		case <-ctx.Done():
			log.Printf("[notify] send timed out: host=%s event=%s", ev.HostID, ev.ID)
		}
	}()
}

// Wait blocks until in-flight notifications finish. Test hook.
func (d *Dispatcher) Wait() { d.wg.Wait() }
