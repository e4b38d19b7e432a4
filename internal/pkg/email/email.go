package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/internhub/internship-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService sends transactional mail. Failures are reported to callers
// but are expected to be treated as non-fatal.
type EmailService interface {
	SendNotification(to, recipientName, title, message, actionURL string) error
	SendOnboarding(to, recipientName, temporaryPassword string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	siteURL   string
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig, siteURL string) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		siteURL:   siteURL,
		templates: tmpl,
	}, nil
}

type notificationEmailData struct {
	RecipientName string
	Title         string
	Message       string
	ActionURL     string
	SiteURL       string
}

// SendNotification renders the generic notification template and mails it.
func (s *emailServiceImpl) SendNotification(to, recipientName, title, message, actionURL string) error {
	data := notificationEmailData{
		RecipientName: recipientName,
		Title:         title,
		Message:       message,
		ActionURL:     actionURL,
		SiteURL:       s.siteURL,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "notification.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, title, body.String())
}

type onboardingEmailData struct {
	RecipientName     string
	TemporaryPassword string
	SiteURL           string
}

// SendOnboarding mails initial credentials to a freshly registered user.
func (s *emailServiceImpl) SendOnboarding(to, recipientName, temporaryPassword string) error {
	data := onboardingEmailData{
		RecipientName:     recipientName,
		TemporaryPassword: temporaryPassword,
		SiteURL:           s.siteURL,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "onboarding.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, "Welcome to the internship program", body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s, 4s
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
