package services

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/123NE456/kb-booking-app/internal/config"
	"github.com/123NE456/kb-booking-app/internal/domain"
)

// sendTimeout bounds the whole SMTP exchange so a slow mail transport can
// never stall a serving goroutine.
const sendTimeout = 5 * time.Second

// EmailService handles sending emails
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// IsEnabled returns whether email sending is configured
func (s *EmailService) IsEnabled() bool {
	return s.cfg.NotificationEnabled()
}

// NotifyBookingAdmin emails the salon inbox about a new reservation
func (s *EmailService) NotifyBookingAdmin(r *domain.Reservation) error {
	subject := fmt.Sprintf("New reservation: %s", r.Hairstyle)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>New Reservation</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #8B5A2B;">New Reservation</h2>
        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Name:</strong> %s</p>
            <p><strong>Phone:</strong> %s</p>
            <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
            <p><strong>Hairstyle:</strong> %s</p>
            <p><strong>Date:</strong> %s</p>
            <p><strong>Time:</strong> %s</p>
        </div>
        <p style="color: #64748B; font-size: 14px;">Reservation ID: #%d</p>
    </div>
</body>
</html>`, r.Name, r.Phone, r.Email, r.Email, r.Hairstyle, r.Date, r.Time, r.ID)

	textBody := fmt.Sprintf(`New Reservation

Name: %s
Phone: %s
Email: %s
Hairstyle: %s
Date: %s
Time: %s

Reservation ID: #%d`, r.Name, r.Phone, r.Email, r.Hairstyle, r.Date, r.Time, r.ID)

	return s.SendHTMLEmail(s.cfg.DestEmail, subject, htmlBody, textBody)
}

// NotifyBookingCustomer emails the customer a booking confirmation
func (s *EmailService) NotifyBookingCustomer(r *domain.Reservation) error {
	subject := fmt.Sprintf("Your %s appointment is booked", s.cfg.FromName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Booking Confirmation</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #8B5A2B;">Thank you, %s!</h2>
        <p>Your appointment is confirmed.</p>
        <div style="background: #F8FAFC; padding: 20px; border-left: 4px solid #8B5A2B; border-radius: 4px; margin: 20px 0;">
            <p><strong>Hairstyle:</strong> %s</p>
            <p><strong>Date:</strong> %s</p>
            <p><strong>Time:</strong> %s</p>
        </div>
        <p style="color: #64748B; font-size: 14px;">If you need to change your appointment, reply to this email or reach us at %s.</p>
    </div>
</body>
</html>`, r.Name, r.Hairstyle, r.Date, r.Time, s.cfg.DestEmail)

	textBody := fmt.Sprintf(`Thank you, %s!

Your appointment is confirmed.

Hairstyle: %s
Date: %s
Time: %s

If you need to change your appointment, reply to this email or reach us at %s.`,
		r.Name, r.Hairstyle, r.Date, r.Time, s.cfg.DestEmail)

	return s.SendHTMLEmail(r.Email, subject, htmlBody, textBody)
}

// NotifyContactAdmin emails the salon inbox about a new contact message
func (s *EmailService) NotifyContactAdmin(m *domain.ContactMessage) error {
	subject := fmt.Sprintf("New contact message from %s", m.Name)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>New Contact Message</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #8B5A2B;">New Contact Message</h2>
        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Name:</strong> %s</p>
            <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
            <p><strong>Subject:</strong> %s</p>
        </div>
        <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #8B5A2B; border-radius: 4px; margin: 20px 0;">
            <p style="white-space: pre-wrap;">%s</p>
        </div>
        <p style="color: #64748B; font-size: 14px;">Message ID: #%d</p>
    </div>
</body>
</html>`, m.Name, m.Email, m.Email, m.Subject, m.Message, m.ID)

	textBody := fmt.Sprintf(`New Contact Message

Name: %s
Email: %s
Subject: %s

%s

Message ID: #%d`, m.Name, m.Email, m.Subject, m.Message, m.ID)

	return s.SendHTMLEmail(s.cfg.DestEmail, subject, htmlBody, textBody)
}

// SendHTMLEmail sends an HTML email with plain text fallback
func (s *EmailService) SendHTMLEmail(to, subject, htmlBody, textBody string) error {
	if !s.IsEnabled() {
		fmt.Printf("[EMAIL] Would send to %s: %s\n", to, subject)
		return nil
	}

	// Validate configuration
	if s.cfg.SMTPHost == "" {
		return fmt.Errorf("email service not properly configured")
	}

	// Set up authentication
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	// Create email message
	from := s.cfg.Username
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.Username)
	}

	// Build multipart message
	boundary := "----=_NextPart_1234567890"

	headers := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n"

	// Plain text part
	message := headers +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		textBody + "\r\n"

	// HTML part (if provided)
	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"Content-Transfer-Encoding: quoted-printable\r\n" +
			"\r\n" +
			htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := sendMailWithDeadline(addr, s.cfg.SMTPHost, auth, s.cfg.Username, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// sendMailWithDeadline is smtp.SendMail with an absolute deadline on the
// connection. smtp.SendMail itself offers no timeout, so the dial and every
// subsequent read/write share one deadline.
func sendMailWithDeadline(addr, host string, auth smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", addr, sendTimeout)
	if err != nil {
		return err
	}
	if err := conn.SetDeadline(time.Now().Add(sendTimeout)); err != nil {
		conn.Close()
		return err
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
