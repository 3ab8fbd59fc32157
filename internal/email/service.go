package email

import (
	"context"
)

// Service sends transactional platform mail. All sends are best-effort
// from the caller's point of view: failures are logged, never fatal.
type Service interface {
	SendMembershipWarning(ctx context.Context, to, companyName string, daysLeft int) error
	SendMembershipExpired(ctx context.Context, to, companyName string) error
	SendTicketAnswer(ctx context.Context, to, subject, answer string) error
	SendCustom(ctx context.Context, to, subject, content string) error
}
