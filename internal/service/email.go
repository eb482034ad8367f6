package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

// send delivers a plain text email. In development it only logs.
func (s *EmailService) send(kind, to, subject, body string, attrs ...any) error {
	if s.isDev {
		args := append([]any{"type", kind, "to", to, "subject", subject}, attrs...)
		slog.Info("email sent (dev mode)", args...)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	slog.Info("email sent", "type", kind, "to", to)
	return nil
}

func (s *EmailService) SendForgotPasswordEmail(email, token, name string) error {
	signInURL := fmt.Sprintf("%s/api/auth/forgot-password/%s", s.appURL, token)
	subject, body := forgotPasswordEmailTemplate(signInURL, s.appName)
	return s.send("forgot_password", email, subject, body, "url", signInURL)
}

func (s *EmailService) SendMagicLinkEmail(email, token, name string) error {
	magicURL := fmt.Sprintf("%s/api/auth/magic-link/%s", s.appURL, token)
	subject, body := magicLinkEmailTemplate(magicURL, s.appName)
	return s.send("magic_link", email, subject, body, "url", magicURL)
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	dashboardURL := fmt.Sprintf("%s/api/me/dashboard", s.appURL)
	subject, body := welcomeEmailTemplate(name, dashboardURL, s.appName)
	return s.send("welcome", email, subject, body)
}

func (s *EmailService) SendAccountDeletedEmail(email, name string) error {
	subject, body := accountDeletedEmailTemplate(name, s.appName)
	return s.send("account_deleted", email, subject, body)
}

func (s *EmailService) SendPledgeEmail(email, name string, number int, certificateURL string) error {
	subject, body := pledgeEmailTemplate(name, number, certificateURL, s.appName)
	return s.send("pledge", email, subject, body, "pledge_number", number)
}

func (s *EmailService) SendWeeklyDigest(email, name string, digest WeeklyDigest) error {
	subject, body := weeklyDigestEmailTemplate(name, digest, s.appURL, s.appName)
	return s.send("weekly_digest", email, subject, body, "carbon_saved", digest.CarbonSaved)
}
