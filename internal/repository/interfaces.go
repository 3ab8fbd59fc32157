package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
)

// All repository interfaces in one file
type (
	// CompanyRepository handles company records. Membership state on the
	// company row is owned by MembershipRepository.
	CompanyRepository interface {
		Create(ctx context.Context, company *model.Company) error
		Get(ctx context.Context, id uuid.UUID) (*model.Company, error)
		Update(ctx context.Context, company *model.Company) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.CompanyFilters) ([]*model.Company, error)
		ListIDs(ctx context.Context) ([]uuid.UUID, error)
	}

	// MembershipRepository owns membership state and period history.
	MembershipRepository interface {
		// ApplyRenewal writes the company's new status/expiry and appends
		// the period row in one transaction.
		ApplyRenewal(ctx context.Context, companyID uuid.UUID, expiresAt time.Time, period *model.MembershipPeriod) error
		SetStatus(ctx context.Context, companyID uuid.UUID, status model.MembershipStatus) error
		ListActive(ctx context.Context) ([]*model.Company, error)
		ListWithMembership(ctx context.Context) ([]*model.Company, error)
		CurrentPeriod(ctx context.Context, companyID uuid.UUID, endDate time.Time) (*model.MembershipPeriod, error)
		SetPeriodNotificationSent(ctx context.Context, periodID uuid.UUID, threshold int) error
		ListPeriods(ctx context.Context, companyID uuid.UUID) ([]*model.MembershipPeriod, error)
	}

	ContractEventRepository interface {
		Create(ctx context.Context, event *model.ContractEvent) error
		Get(ctx context.Context, id uuid.UUID) (*model.ContractEvent, error)
		List(ctx context.Context, filters *model.ContractEventFilters) ([]*model.ContractEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.ContractEventStatus) (bool, error)
		CountPending(ctx context.Context) (int, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
		AssignBatch(ctx context.Context, rows []*model.UserNotification) error
		ListForRecipient(ctx context.Context, recipient model.Recipient) ([]*model.UserNotificationView, error)
		UnreadCount(ctx context.Context, recipient model.Recipient) (int, error)
		MarkRead(ctx context.Context, userNotificationID uuid.UUID, readAt time.Time) error
		MarkAllRead(ctx context.Context, recipient model.Recipient, readAt time.Time) error
		DeleteMany(ctx context.Context, userNotificationIDs []uuid.UUID) (int64, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.User, error)
		ListIDs(ctx context.Context) ([]uuid.UUID, error)
	}

	// DirectoryRepository serves the cities/sectors/services catalog.
	DirectoryRepository interface {
		CreateCity(ctx context.Context, city *model.City) error
		UpdateCity(ctx context.Context, city *model.City) error
		DeleteCity(ctx context.Context, id uuid.UUID) error
		ListCities(ctx context.Context) ([]*model.City, error)

		CreateSector(ctx context.Context, sector *model.Sector) error
		UpdateSector(ctx context.Context, sector *model.Sector) error
		DeleteSector(ctx context.Context, id uuid.UUID) error
		ListSectors(ctx context.Context) ([]*model.Sector, error)

		CreateService(ctx context.Context, service *model.Service) error
		UpdateService(ctx context.Context, service *model.Service) error
		DeleteService(ctx context.Context, id uuid.UUID) error
		ListServices(ctx context.Context, sectorID *uuid.UUID) ([]*model.Service, error)
	}

	ReviewRepository interface {
		Create(ctx context.Context, review *model.Review) error
		Get(ctx context.Context, id uuid.UUID) (*model.Review, error)
		Delete(ctx context.Context, id uuid.UUID) error
		ListForCompany(ctx context.Context, companyID uuid.UUID) ([]*model.Review, error)
	}

	FAQRepository interface {
		Create(ctx context.Context, faq *model.FAQ) error
		Get(ctx context.Context, id uuid.UUID) (*model.FAQ, error)
		Update(ctx context.Context, faq *model.FAQ) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.FAQ, error)
	}

	SupportTicketRepository interface {
		Create(ctx context.Context, ticket *model.SupportTicket) error
		Get(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error)
		Update(ctx context.Context, ticket *model.SupportTicket) error
		List(ctx context.Context, status model.TicketStatus) ([]*model.SupportTicket, error)
	}

	AdminRepository interface {
		Create(ctx context.Context, admin *model.Admin) error
		GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	}
)
