package notification

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftlink/platform-api/internal/model"
	apperrors "github.com/craftlink/platform-api/pkg/errors"
	"github.com/craftlink/platform-api/pkg/logger"
)

type fakeNotificationRepo struct {
	notifications map[uuid.UUID]*model.Notification
	deliveries    []*model.UserNotification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uuid.UUID]*model.Notification)}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	n.ID = uuid.New()
	f.notifications[n.ID] = n
	return nil
}
func (f *fakeNotificationRepo) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return n, nil
}
func (f *fakeNotificationRepo) AssignBatch(ctx context.Context, rows []*model.UserNotification) error {
	for _, row := range rows {
		row.ID = uuid.New()
		f.deliveries = append(f.deliveries, row)
	}
	return nil
}
func (f *fakeNotificationRepo) ListForRecipient(ctx context.Context, recipient model.Recipient) ([]*model.UserNotificationView, error) {
	var views []*model.UserNotificationView
	for _, row := range f.deliveries {
		if !recipient.Matches(row) {
			continue
		}
		n := f.notifications[row.NotificationID]
		views = append(views, &model.UserNotificationView{
			UserNotification: *row,
			Message:          n.Message,
			Target:           n.Target,
		})
	}
	return views, nil
}
func (f *fakeNotificationRepo) UnreadCount(ctx context.Context, recipient model.Recipient) (int, error) {
	count := 0
	for _, row := range f.deliveries {
		if recipient.Matches(row) && !row.IsRead {
			count++
		}
	}
	return count, nil
}
func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID, readAt time.Time) error {
	for _, row := range f.deliveries {
		if row.ID == id {
			if !row.IsRead {
				row.IsRead = true
				row.ReadAt = &readAt
			}
			return nil
		}
	}
	return sql.ErrNoRows
}
func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipient model.Recipient, readAt time.Time) error {
	for _, row := range f.deliveries {
		if recipient.Matches(row) && !row.IsRead {
			row.IsRead = true
			row.ReadAt = &readAt
		}
	}
	return nil
}
func (f *fakeNotificationRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var kept []*model.UserNotification
	var deleted int64
	for _, row := range f.deliveries {
		if wanted[row.ID] {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	f.deliveries = kept
	return deleted, nil
}

type fakeIDLister struct{ ids []uuid.UUID }

func (f *fakeIDLister) ListIDs(ctx context.Context) ([]uuid.UUID, error) { return f.ids, nil }

type fakeUserRepo struct{ fakeIDLister }

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error { return nil }
func (f *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeUserRepo) Update(ctx context.Context, u *model.User) error      { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (f *fakeUserRepo) List(ctx context.Context) ([]*model.User, error)      { return nil, nil }

type fakeCompanyRepo struct{ fakeIDLister }

func (f *fakeCompanyRepo) Create(ctx context.Context, c *model.Company) error { return nil }
func (f *fakeCompanyRepo) Get(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeCompanyRepo) Update(ctx context.Context, c *model.Company) error { return nil }
func (f *fakeCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *fakeCompanyRepo) List(ctx context.Context, filters *model.CompanyFilters) ([]*model.Company, error) {
	return nil, nil
}

type sentEmail struct {
	to      string
	subject string
	content string
}

type fakeEmailService struct{ custom []sentEmail }

func (f *fakeEmailService) SendMembershipWarning(ctx context.Context, to, companyName string, daysLeft int) error {
	return nil
}
func (f *fakeEmailService) SendMembershipExpired(ctx context.Context, to, companyName string) error {
	return nil
}
func (f *fakeEmailService) SendTicketAnswer(ctx context.Context, to, subject, answer string) error {
	return nil
}
func (f *fakeEmailService) SendCustom(ctx context.Context, to, subject, content string) error {
	f.custom = append(f.custom, sentEmail{to: to, subject: subject, content: content})
	return nil
}

type publishedMessage struct {
	channel string
	message interface{}
}

type fakeBroker struct{ published []publishedMessage }

func (f *fakeBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	f.published = append(f.published, publishedMessage{channel: channel, message: message})
	return nil
}
func (f *fakeBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}
func (f *fakeBroker) Close() error { return nil }

type fixture struct {
	svc     *Service
	repo    *fakeNotificationRepo
	users   *fakeUserRepo
	emails  *fakeEmailService
	broker  *fakeBroker
}

func newFixture(userIDs, companyIDs []uuid.UUID) *fixture {
	repo := newFakeNotificationRepo()
	users := &fakeUserRepo{fakeIDLister{ids: userIDs}}
	companies := &fakeCompanyRepo{fakeIDLister{ids: companyIDs}}
	emails := &fakeEmailService{}
	broker := &fakeBroker{}
	svc := NewService(repo, users, companies, emails, broker, logger.NewLogger(nil))
	return &fixture{svc: svc, repo: repo, users: users, emails: emails, broker: broker}
}

func TestCreateRequiresMessageAndTarget(t *testing.T) {
	f := newFixture(nil, nil)

	_, _, err := f.svc.Create(context.Background(), "", model.NotificationTargetAll, nil, "admin")
	require.Error(t, err)

	_, _, err = f.svc.Create(context.Background(), "hello", "", nil, "admin")
	require.Error(t, err)
}

func TestCreateCustomRequiresEmail(t *testing.T) {
	f := newFixture(nil, nil)

	_, _, err := f.svc.Create(context.Background(), "hello", model.NotificationTargetCustom, nil, "admin")
	require.Error(t, err)

	empty := ""
	_, _, err = f.svc.Create(context.Background(), "hello", model.NotificationTargetCustom, &empty, "admin")
	require.Error(t, err)
}

func TestCreateFansOutToUsers(t *testing.T) {
	userIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	f := newFixture(userIDs, []uuid.UUID{uuid.New()})

	n, assigned, err := f.svc.Create(context.Background(), "maintenance tonight", model.NotificationTargetUser, nil, "admin")
	require.NoError(t, err)
	assert.Equal(t, 3, assigned)
	require.Len(t, f.repo.deliveries, 3)
	for _, row := range f.repo.deliveries {
		assert.Equal(t, n.ID, row.NotificationID)
		assert.Equal(t, model.AccountTypeUser, row.AccountType)
		assert.Nil(t, row.UserEmail)
	}
}

func TestCreateAllFansOutToEveryAccount(t *testing.T) {
	f := newFixture([]uuid.UUID{uuid.New(), uuid.New()}, []uuid.UUID{uuid.New()})

	_, assigned, err := f.svc.Create(context.Background(), "welcome", model.NotificationTargetAll, nil, "admin")
	require.NoError(t, err)
	assert.Equal(t, 3, assigned)
}

func TestCreateCustomAssignsSingleEmailRow(t *testing.T) {
	f := newFixture([]uuid.UUID{uuid.New()}, []uuid.UUID{uuid.New()})

	email := "guest@example.com"
	_, assigned, err := f.svc.Create(context.Background(), "your quote is ready", model.NotificationTargetCustom, &email, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, assigned)

	require.Len(t, f.repo.deliveries, 1)
	row := f.repo.deliveries[0]
	assert.Nil(t, row.UserID)
	require.NotNil(t, row.UserEmail)
	assert.Equal(t, email, *row.UserEmail)

	require.Len(t, f.emails.custom, 1)
	assert.Equal(t, email, f.emails.custom[0].to)
}

func TestCreatePublishesEvent(t *testing.T) {
	f := newFixture([]uuid.UUID{uuid.New()}, nil)

	_, _, err := f.svc.Create(context.Background(), "hello", model.NotificationTargetUser, nil, "admin")
	require.NoError(t, err)
	require.Len(t, f.broker.published, 1)
	assert.Equal(t, eventChannel, f.broker.published[0].channel)
}

func TestNotifyAccountCreatesSingleDelivery(t *testing.T) {
	f := newFixture(nil, nil)
	companyID := uuid.New()

	err := f.svc.NotifyAccount(context.Background(), model.AccountTypeCompany, companyID, "membership expiring")
	require.NoError(t, err)

	require.Len(t, f.repo.deliveries, 1)
	row := f.repo.deliveries[0]
	require.NotNil(t, row.UserID)
	assert.Equal(t, companyID, *row.UserID)
	assert.Equal(t, model.AccountTypeCompany, row.AccountType)
}

func TestListMatchesByIDOrEmail(t *testing.T) {
	userID := uuid.New()
	f := newFixture([]uuid.UUID{userID}, nil)

	// Delivered by platform identity.
	_, _, err := f.svc.Create(context.Background(), "for users", model.NotificationTargetUser, nil, "admin")
	require.NoError(t, err)

	// Delivered by email only.
	email := "pat@example.com"
	_, _, err = f.svc.Create(context.Background(), "for the email", model.NotificationTargetCustom, &email, "admin")
	require.NoError(t, err)

	// A recipient carrying both keys sees both deliveries.
	recipient := model.RecipientByID(userID, model.AccountTypeUser).WithEmail(email)
	views, err := f.svc.ListForRecipient(context.Background(), recipient)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	// ID-only recipient sees only the identity-addressed row.
	views, err = f.svc.ListForRecipient(context.Background(), model.RecipientByID(userID, model.AccountTypeUser))
	require.NoError(t, err)
	assert.Len(t, views, 1)

	// Same id under the other account type matches nothing.
	views, err = f.svc.ListForRecipient(context.Background(), model.RecipientByID(userID, model.AccountTypeCompany))
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	userID := uuid.New()
	f := newFixture([]uuid.UUID{userID}, nil)

	_, _, err := f.svc.Create(context.Background(), "hello", model.NotificationTargetUser, nil, "admin")
	require.NoError(t, err)
	rowID := f.repo.deliveries[0].ID

	require.NoError(t, f.svc.MarkRead(context.Background(), rowID))
	firstReadAt := f.repo.deliveries[0].ReadAt
	require.NotNil(t, firstReadAt)

	require.NoError(t, f.svc.MarkRead(context.Background(), rowID))
	assert.Equal(t, firstReadAt, f.repo.deliveries[0].ReadAt)
}

func TestMarkReadUnknownRow(t *testing.T) {
	f := newFixture(nil, nil)

	err := f.svc.MarkRead(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMarkAllRead(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()
	f := newFixture([]uuid.UUID{userID, otherID}, nil)

	_, _, err := f.svc.Create(context.Background(), "first", model.NotificationTargetUser, nil, "admin")
	require.NoError(t, err)
	_, _, err = f.svc.Create(context.Background(), "second", model.NotificationTargetUser, nil, "admin")
	require.NoError(t, err)

	recipient := model.RecipientByID(userID, model.AccountTypeUser)
	require.NoError(t, f.svc.MarkAllRead(context.Background(), recipient))

	count, err := f.svc.UnreadCount(context.Background(), recipient)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// The other user's copies stay unread.
	count, err = f.svc.UnreadCount(context.Background(), model.RecipientByID(otherID, model.AccountTypeUser))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDeleteManyRemovesOnlyListedRows(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()
	f := newFixture([]uuid.UUID{userID, otherID}, nil)

	n, _, err := f.svc.Create(context.Background(), "shared broadcast", model.NotificationTargetUser, nil, "admin")
	require.NoError(t, err)
	require.Len(t, f.repo.deliveries, 2)

	deleted, err := f.svc.DeleteMany(context.Background(), []uuid.UUID{f.repo.deliveries[0].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// The logical notification and the other recipient's copy survive.
	_, err = f.repo.Get(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Len(t, f.repo.deliveries, 1)
}

func TestDeleteManyRequiresIDs(t *testing.T) {
	f := newFixture(nil, nil)

	_, err := f.svc.DeleteMany(context.Background(), nil)
	require.Error(t, err)
}
