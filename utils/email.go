package utils

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ManjeetSingh-02/project-management-tool/logging"
)

// MailConfig carries the SMTP relay settings and the origin URL used to
// build links in outgoing mail.
type MailConfig struct {
	Host      string
	Port      string
	Username  string
	Password  string
	From      string
	OriginURL string
}

// Mailer sends account emails through an SMTP relay. Sends go through a
// circuit breaker so a dead relay fails fast instead of stalling every
// registration.
type Mailer struct {
	config  MailConfig
	breaker *gobreaker.CircuitBreaker
}

func NewMailer(config MailConfig) *Mailer {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "MailRelayCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	return &Mailer{config: config, breaker: breaker}
}

// SendEmail sends a single HTML email to the given address.
func (m *Mailer) SendEmail(to, subject, body string) error {
	if m.config.Password == "" {
		return fmt.Errorf("SMTP password is not set")
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.config.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	_, err := m.breaker.Execute(func() (any, error) {
		return nil, smtp.SendMail(m.config.Host+":"+m.config.Port, auth, m.config.From, []string{to}, message)
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendVerificationEmail mails the account-verification link.
func (m *Mailer) SendVerificationEmail(to, username, token string) error {
	link := fmt.Sprintf("%s/api/v1/users/verify-account/%s", m.config.OriginURL, token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Welcome to Project Management Tool! We're very excited to have you on board.</p>"+
			"<p>To verify your account, please click here: <a href=\"%s\">Verify your account</a></p>",
		username, link)
	return m.SendEmail(to, "Verify your account - Project Management Tool", body)
}

// SendPasswordResetEmail mails the password-reset link.
func (m *Mailer) SendPasswordResetEmail(to, username, token string) error {
	link := fmt.Sprintf("%s/api/v1/users/reset-password/%s", m.config.OriginURL, token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>You have requested to reset your password.</p>"+
			"<p>To reset your password, please click here: <a href=\"%s\">Reset your password</a></p>",
		username, link)
	return m.SendEmail(to, "Reset Your Password - Project Management Tool", body)
}
