package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"github.com/sefazor/learnhub-backend/internal/config"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

type Receipt struct {
	CourseID    uint
	CourseTitle string
	Amount      float64
	Currency    string
	Reference   string
}

type EmailService struct {
	client      *resend.Client
	from        string
	fromName    string
	frontendURL string
	templates   *template.Template
	logger      *zap.Logger
}

func NewEmailService(cfg *config.Config, logger *zap.Logger) (*EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	var client *resend.Client
	if cfg.Email.ResendAPIKey != "" {
		client = resend.NewClient(cfg.Email.ResendAPIKey)
	}

	return &EmailService{
		client:      client,
		from:        cfg.Email.FromAddress,
		fromName:    cfg.Email.FromName,
		frontendURL: cfg.FrontendURL,
		templates:   tmpl,
		logger:      logger.Named("email"),
	}, nil
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	return s.send(email, "Welcome to LearnHub!", "welcome.html", map[string]interface{}{
		"Name": name,
		"Link": s.frontendURL + "/courses",
	})
}

func (s *EmailService) SendEnrollmentReceipt(email, name string, r Receipt) error {
	return s.send(email, "You're enrolled: "+r.CourseTitle, "enrollment-receipt.html", map[string]interface{}{
		"Name":        name,
		"CourseTitle": r.CourseTitle,
		"Amount":      fmt.Sprintf("%.2f", r.Amount),
		"Currency":    r.Currency,
		"Reference":   r.Reference,
		"Link":        fmt.Sprintf("%s/course-progress/%d", s.frontendURL, r.CourseID),
	})
}

func (s *EmailService) SendPasswordResetEmail(email, resetToken string) error {
	return s.send(email, "Reset Your Password - LearnHub", "reset-password.html", map[string]interface{}{
		"Link": s.frontendURL + "/reset-password?token=" + resetToken,
	})
}

func (s *EmailService) send(to, subject, templateName string, data map[string]interface{}) error {
	data["Email"] = to
	data["Year"] = time.Now().Year()

	html, err := s.render(templateName, data)
	if err != nil {
		s.logger.Error("failed to render template", zap.String("template", templateName), zap.Error(err))
		return err
	}

	if s.client == nil {
		s.logger.Warn("RESEND_API_KEY not set, email not sent", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	resp, err := s.client.Emails.Send(&resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		s.logger.Error("failed to send email", zap.String("to", to), zap.String("template", templateName), zap.Error(err))
		return err
	}

	s.logger.Info("email sent", zap.String("to", to), zap.String("template", templateName), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) render(templateName string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
