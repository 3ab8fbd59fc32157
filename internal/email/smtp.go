package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPService creates a gomail-backed sender.
func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendMembershipWarning(ctx context.Context, to, companyName string, daysLeft int) error {
	subject := fmt.Sprintf("Your membership expires in %d days", daysLeft)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour membership expires in %d days. Renew now to keep your company listed.\n",
		companyName, daysLeft,
	)
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) SendMembershipExpired(ctx context.Context, to, companyName string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour membership has expired and your listing is no longer public. Renew to reactivate it.\n",
		companyName,
	)
	return s.send(ctx, to, "Your membership has expired", body)
}

func (s *smtpService) SendTicketAnswer(ctx context.Context, to, subject, answer string) error {
	return s.send(ctx, to, "Re: "+subject, answer)
}

func (s *smtpService) SendCustom(ctx context.Context, to, subject, content string) error {
	return s.send(ctx, to, subject, content)
}

func (s *smtpService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
