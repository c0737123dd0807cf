// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/genun/genun-backend/internal/config"
	"github.com/genun/genun-backend/internal/models"
)

type NotificationService struct {
	config *config.Config
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{config: cfg}
}

var verificationTemplate = template.Must(template.New("verification").Parse(`
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Thanks for registering with {{.PlatformName}}. Please confirm your email address by clicking the link below:</p>
	<a href="{{.VerificationURL}}">Verify Email</a>
	<p>The link expires in {{.ExpiresIn}}.</p>
	<p>If you did not create this account, you can ignore this message.</p>
	<p>Best regards,<br>{{.PlatformName}} Team</p>
</body>
</html>`))

// SendVerificationEmail mails the verification link for a freshly
// registered or still-unverified manufacturer.
func (s *NotificationService) SendVerificationEmail(manufacturer *models.Manufacturer, token string) error {
	data := map[string]interface{}{
		"Name":            manufacturer.Name,
		"VerificationURL": fmt.Sprintf("%s/verify-email?token=%s", s.config.Frontend.BaseURL, token),
		"PlatformName":    s.config.Email.FromName,
		"ExpiresIn":       fmt.Sprintf("%d hour(s)", s.config.JWT.VerificationTokenTTL),
	}

	var buf bytes.Buffer
	if err := verificationTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Verify your %s account", s.config.Email.FromName)
	return s.sendEmail(manufacturer.Email, subject, buf.String())
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log.
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email delivery skipped: SMTP not configured")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s <%s>\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		to, s.config.Email.FromName, s.config.Email.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}
