// Package email, email gönderimi için soyutlama katmanı.
//
// Service katmanı EmailSender interface'ine bağımlıdır; şu anki tek
// implementasyon Resend API kullanır. Sağlayıcı değişirse yeni bir
// implementasyon yazıp wire-up'ta değiştirmek yeterli.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
type EmailSender interface {
	// SendPasswordReset, kullanıcıya şifre sıfırlama linki gönderir.
	// token plaintext'tir ve linke gömülür; DB tarafında hash'i saklanır.
	SendPasswordReset(ctx context.Context, toEmail, token string) error
}

// resendSender, Resend API ile gönderen implementasyon.
type resendSender struct {
	client    *resend.Client
	fromEmail string
	appURL    string // reset linklerinin base URL'i
}

// NewResendSender, Resend client'ı ile yeni bir EmailSender oluşturur.
// fromEmail, Resend'de doğrulanmış bir domain altında olmalıdır.
func NewResendSender(apiKey, fromEmail, appURL string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

func (s *resendSender) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, token)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:0;background-color:#0f172a;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="padding:40px 0;">
    <tr>
      <td align="center">
        <table width="460" cellpadding="0" cellspacing="0" style="background-color:#1e293b;border-radius:8px;padding:36px;">
          <tr>
            <td>
              <h1 style="color:#f1f5f9;font-size:22px;margin:0 0 20px 0;">concord</h1>
              <p style="color:#94a3b8;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                We received a request to reset your password. Click the button below to choose a new one.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#4f46e5;border-radius:6px;padding:12px 28px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">Reset Password</a>
                  </td>
                </tr>
              </table>
              <p style="color:#64748b;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                This link expires in 20 minutes. If you didn't request a reset, ignore this email.<br><br>
                If the button doesn't work: <a href="%s" style="color:#818cf8;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, resetLink, resetLink, resetLink)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("concord <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: "Reset your password",
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	return nil
}
