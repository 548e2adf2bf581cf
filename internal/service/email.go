package service

import (
	"fmt"
	"net/smtp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aifolio/backend/internal/models"
)

// EmailService sends account mail over SMTP.
type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	baseURL      string
}

var _ Mailer = (*EmailService)(nil)

func NewEmailService(host, port, username, password, fromEmail, fromName, baseURL string) *EmailService {
	return &EmailService{
		smtpHost:     host,
		smtpPort:     port,
		smtpUsername: username,
		smtpPassword: password,
		fromEmail:    fromEmail,
		fromName:     fromName,
		baseURL:      baseURL,
	}
}

func (s *EmailService) SendVerificationEmail(user *models.User, token string) error {
	subject := "Verify your email address"
	verifyURL := fmt.Sprintf("%s/api/v1/auth/verify?token=%s", s.baseURL, token)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nPlease confirm your email address by opening the link below:\r\n\r\n%s\r\n\r\nThe link expires in 24 hours.\r\n",
		displayName(user), verifyURL)
	return s.send(user.Email, subject, body)
}

func (s *EmailService) SendWelcomeEmail(user *models.User) error {
	subject := "Welcome to your portfolio"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour email is verified. Your profile is ready, add your first project to get started.\r\n",
		displayName(user))
	return s.send(user.Email, subject, body)
}

func (s *EmailService) send(to, subject, body string) error {
	if s.smtpHost == "" {
		return fmt.Errorf("smtp host not configured")
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.fromName, s.fromEmail, to, subject, body)

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	return smtp.SendMail(addr, auth, s.fromEmail, []string{to}, []byte(msg))
}

func displayName(user *models.User) string {
	if user.Name == "" {
		return "there"
	}
	return cases.Title(language.English).String(user.Name)
}
