package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/bitfinek-invest/invest_service/pkg/retry"
)

const mailersendAPIBaseURL = "https://api.mailersend.com/v1"

// EmailServiceConfig holds email service configuration
type EmailServiceConfig struct {
	Provider  string
	APIKey    string
	BaseURL   string
	FromEmail string
	FromName  string
	ReplyTo   string
	// SMTP settings (for local development)
	SMTPHost string
	SMTPPort int
}

// EmailService sends transactional email via the configured provider
type EmailService struct {
	logger     *zap.Logger
	config     EmailServiceConfig
	client     *sendgrid.Client
	httpClient *http.Client
	retrier    *retry.Retrier
}

// NewEmailService creates a new email service
func NewEmailService(logger *zap.Logger, config EmailServiceConfig) (*EmailService, error) {
	provider := strings.ToLower(strings.TrimSpace(config.Provider))
	if provider == "" {
		return nil, fmt.Errorf("email provider is required")
	}

	if strings.TrimSpace(config.FromEmail) == "" {
		return nil, fmt.Errorf("email from address is required")
	}

	var (
		client     *sendgrid.Client
		httpClient *http.Client
	)

	switch provider {
	case "sendgrid":
		if strings.TrimSpace(config.APIKey) == "" {
			return nil, fmt.Errorf("sendgrid api key is required")
		}
		client = sendgrid.NewSendClient(config.APIKey)
	case "mailersend":
		if strings.TrimSpace(config.APIKey) == "" {
			return nil, fmt.Errorf("mailersend api key is required")
		}
		if config.BaseURL == "" {
			config.BaseURL = mailersendAPIBaseURL
		}
		httpClient = &http.Client{Timeout: 30 * time.Second}
	case "smtp":
		if config.SMTPHost == "" {
			return nil, fmt.Errorf("smtp host is required for smtp provider")
		}
		if config.SMTPPort == 0 {
			config.SMTPPort = 1025
		}
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", provider)
	}

	retrier, err := retry.New(retry.DefaultPolicy(), nil, logger)
	if err != nil {
		return nil, err
	}

	return &EmailService{
		logger:     logger,
		config:     config,
		client:     client,
		httpClient: httpClient,
		retrier:    retrier,
	}, nil
}

// SendVerificationEmail sends the branded verification code email
func (e *EmailService) SendVerificationEmail(ctx context.Context, email, name, code string) error {
	if name == "" {
		name = "Investor"
	}
	subject := "Verify Your Email - Bitfinekinvest"
	htmlContent := e.buildVerificationHTML(name, code)
	textContent := fmt.Sprintf("Welcome to Bitfinekinvest! Your verification code is: %s. This code will expire in 15 minutes.", code)

	return e.sendEmail(ctx, email, name, subject, htmlContent, textContent)
}

// sendEmail dispatches via the configured provider
func (e *EmailService) sendEmail(ctx context.Context, to, toName, subject, htmlContent, textContent string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return e.retrier.Do(ctxWithTimeout, func() error {
		switch strings.ToLower(e.config.Provider) {
		case "sendgrid":
			return e.sendViaSendgrid(ctxWithTimeout, to, subject, htmlContent, textContent)
		case "mailersend":
			return e.sendViaMailerSend(ctxWithTimeout, to, toName, subject, htmlContent, textContent)
		case "smtp":
			return e.sendViaSMTP(ctxWithTimeout, to, subject, htmlContent)
		default:
			return fmt.Errorf("unsupported email provider: %s", e.config.Provider)
		}
	})
}

func (e *EmailService) sendViaSendgrid(ctx context.Context, to, subject, htmlContent, textContent string) error {
	if e.client == nil {
		return fmt.Errorf("sendgrid client not configured")
	}

	from := mail.NewEmail(e.config.FromName, e.config.FromEmail)
	toEmail := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, toEmail, textContent, htmlContent)

	if strings.TrimSpace(e.config.ReplyTo) != "" {
		message.SetReplyTo(mail.NewEmail(e.config.FromName, e.config.ReplyTo))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		e.logger.Error("Failed to send email",
			zap.String("provider", "sendgrid"),
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		e.logger.Error("Email service returned error",
			zap.String("provider", "sendgrid"),
			zap.String("to", to),
			zap.Int("status_code", response.StatusCode),
			zap.String("response_body", response.Body))
		return fmt.Errorf("email service error: status %d, body: %s", response.StatusCode, response.Body)
	}

	e.logger.Info("Email sent successfully",
		zap.String("provider", "sendgrid"),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("status_code", response.StatusCode))

	return nil
}

type mailersendAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailersendPayload struct {
	From    mailersendAddress   `json:"from"`
	To      []mailersendAddress `json:"to"`
	Subject string              `json:"subject"`
	HTML    string              `json:"html"`
	Text    string              `json:"text"`
}

func (e *EmailService) sendViaMailerSend(ctx context.Context, to, toName, subject, htmlContent, textContent string) error {
	if e.httpClient == nil {
		return fmt.Errorf("mailersend client not configured")
	}

	payload := mailersendPayload{
		From:    mailersendAddress{Email: e.config.FromEmail, Name: e.config.FromName},
		To:      []mailersendAddress{{Email: to, Name: toName}},
		Subject: subject,
		HTML:    htmlContent,
		Text:    textContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.BaseURL+"/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.config.APIKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.logger.Error("Failed to send email",
			zap.String("provider", "mailersend"),
			zap.String("to", to),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		e.logger.Error("Email service returned error",
			zap.String("provider", "mailersend"),
			zap.String("to", to),
			zap.Int("status_code", resp.StatusCode),
			zap.String("response_body", string(respBody)))
		return fmt.Errorf("email service error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	e.logger.Info("Email sent successfully",
		zap.String("provider", "mailersend"),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("status_code", resp.StatusCode))

	return nil
}

func (e *EmailService) sendViaSMTP(_ context.Context, to, subject, htmlContent string) error {
	from := e.config.FromEmail
	if e.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", e.config.FromName, e.config.FromEmail)
	}

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	if e.config.ReplyTo != "" {
		msg.WriteString(fmt.Sprintf("Reply-To: %s\r\n", e.config.ReplyTo))
	}
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlContent)

	addr := fmt.Sprintf("%s:%d", e.config.SMTPHost, e.config.SMTPPort)
	var auth smtp.Auth

	if err := smtp.SendMail(addr, auth, e.config.FromEmail, []string{to}, msg.Bytes()); err != nil {
		e.logger.Error("Failed to send email via SMTP",
			zap.String("to", to),
			zap.String("host", e.config.SMTPHost),
			zap.Error(err))
		return fmt.Errorf("smtp send failed: %w", err)
	}

	e.logger.Info("Email sent successfully",
		zap.String("provider", "smtp"),
		zap.String("to", to),
		zap.String("subject", subject))

	return nil
}

func (e *EmailService) buildVerificationHTML(name, code string) string {
	safeName := html.EscapeString(name)
	safeCode := html.EscapeString(code)

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="font-family: Arial, sans-serif; background-color: #f7f9fc; margin: 0; padding: 0;">
    <div style="max-width: 600px; margin: 40px auto; background: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(10, 37, 64, 0.1);">
        <div style="background: linear-gradient(135deg, #0A2540 0%%, #1E4D7B 100%%); padding: 40px 30px; text-align: center;">
            <div style="font-size: 32px; font-weight: 700; color: #ffffff; margin-bottom: 10px;">Bitfinekinvest</div>
            <div style="color: #F4E5B2; font-size: 14px;">Secure Crypto Investment</div>
        </div>
        <div style="padding: 40px 30px;">
            <h1 style="color: #0A2540; font-size: 24px; margin-bottom: 20px;">Welcome, %s!</h1>
            <p style="color: #1E4D7B; font-size: 16px; line-height: 1.6; margin-bottom: 20px;">Thank you for registering with Bitfinekinvest. To complete your account setup, please verify your email address using the code below:</p>
            <div style="background: linear-gradient(135deg, #f7f9fc 0%%, #ffffff 100%%); border: 2px solid #D4AF37; border-radius: 8px; padding: 30px; text-align: center; margin: 30px 0;">
                <div style="font-size: 48px; font-weight: 700; color: #0A2540; letter-spacing: 8px; font-family: Courier New, monospace;">%s</div>
                <div style="color: #1E4D7B; font-size: 14px; margin-top: 10px;">Your Verification Code</div>
            </div>
            <p style="color: #1E4D7B; font-size: 16px; line-height: 1.6; margin-bottom: 20px;">Enter this code on the verification page to activate your account and start investing.</p>
            <div style="background: rgba(245, 158, 11, 0.1); border-left: 4px solid #D4AF37; padding: 15px; border-radius: 4px; margin: 20px 0;">
                <p style="margin: 0; font-size: 14px; color: #1E4D7B;"><strong>Warning:</strong> This code will expire in 15 minutes. If you did not request this verification, please ignore this email.</p>
            </div>
            <p style="color: #1E4D7B; font-size: 16px; line-height: 1.6;">If you have any questions, feel free to contact our support team.</p>
        </div>
        <div style="background: #f7f9fc; padding: 30px; text-align: center; border-top: 1px solid #e5e7eb;">
            <p style="font-size: 14px; color: #1E4D7B; margin: 5px 0;"><strong>Bitfinekinvest</strong></p>
            <p style="font-size: 14px; color: #1E4D7B; margin: 5px 0;">Secure Crypto Investment Platform</p>
            <p style="font-size: 12px; margin-top: 15px; color: #1E4D7B;">&copy; 2026 Bitfinekinvest. All rights reserved.</p>
        </div>
    </div>
</body>
</html>`, safeName, safeCode)
}
