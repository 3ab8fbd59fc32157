package membership

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

type fakeCompanyRepo struct {
	companies map[uuid.UUID]*model.Company
}

func (f *fakeCompanyRepo) Create(ctx context.Context, c *model.Company) error { return nil }
func (f *fakeCompanyRepo) Get(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}
func (f *fakeCompanyRepo) Update(ctx context.Context, c *model.Company) error { return nil }
func (f *fakeCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *fakeCompanyRepo) List(ctx context.Context, filters *model.CompanyFilters) ([]*model.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) { return nil, nil }

type appliedRenewal struct {
	companyID uuid.UUID
	expiresAt time.Time
	period    *model.MembershipPeriod
}

type fakeMembershipRepo struct {
	active       []*model.Company
	periods      map[uuid.UUID]*model.MembershipPeriod
	renewals     []appliedRenewal
	statusSets   map[uuid.UUID]model.MembershipStatus
	sentPeriods  map[uuid.UUID]int
	missingOnSet bool
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{
		periods:     make(map[uuid.UUID]*model.MembershipPeriod),
		statusSets:  make(map[uuid.UUID]model.MembershipStatus),
		sentPeriods: make(map[uuid.UUID]int),
	}
}

func (f *fakeMembershipRepo) ApplyRenewal(ctx context.Context, companyID uuid.UUID, expiresAt time.Time, period *model.MembershipPeriod) error {
	f.renewals = append(f.renewals, appliedRenewal{companyID: companyID, expiresAt: expiresAt, period: period})
	return nil
}
func (f *fakeMembershipRepo) SetStatus(ctx context.Context, companyID uuid.UUID, status model.MembershipStatus) error {
	if f.missingOnSet {
		return sql.ErrNoRows
	}
	f.statusSets[companyID] = status
	return nil
}
func (f *fakeMembershipRepo) ListActive(ctx context.Context) ([]*model.Company, error) {
	return f.active, nil
}
func (f *fakeMembershipRepo) ListWithMembership(ctx context.Context) ([]*model.Company, error) {
	return f.active, nil
}
func (f *fakeMembershipRepo) CurrentPeriod(ctx context.Context, companyID uuid.UUID, endDate time.Time) (*model.MembershipPeriod, error) {
	p, ok := f.periods[companyID]
	if !ok || !p.EndDate.Equal(endDate) {
		return nil, nil
	}
	return p, nil
}
func (f *fakeMembershipRepo) SetPeriodNotificationSent(ctx context.Context, periodID uuid.UUID, threshold int) error {
	f.sentPeriods[periodID] = threshold
	return nil
}
func (f *fakeMembershipRepo) ListPeriods(ctx context.Context, companyID uuid.UUID) ([]*model.MembershipPeriod, error) {
	return nil, nil
}

type sentNotification struct {
	accountType model.AccountType
	accountID   uuid.UUID
	message     string
}

type fakeNotifier struct {
	sent []sentNotification
	err  error
}

func (f *fakeNotifier) NotifyAccount(ctx context.Context, accountType model.AccountType, accountID uuid.UUID, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentNotification{accountType: accountType, accountID: accountID, message: message})
	return nil
}

type sentEmail struct {
	to       string
	company  string
	daysLeft int
	expired  bool
}

type fakeEmailService struct {
	sent []sentEmail
	err  error
}

func (f *fakeEmailService) SendMembershipWarning(ctx context.Context, to, companyName string, daysLeft int) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: to, company: companyName, daysLeft: daysLeft})
	return nil
}
func (f *fakeEmailService) SendMembershipExpired(ctx context.Context, to, companyName string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: to, company: companyName, expired: true})
	return nil
}
func (f *fakeEmailService) SendTicketAnswer(ctx context.Context, to, subject, answer string) error {
	return nil
}
func (f *fakeEmailService) SendCustom(ctx context.Context, to, subject, content string) error {
	return nil
}

func newTestService(companies *fakeCompanyRepo, repo *fakeMembershipRepo, notifier *fakeNotifier, now time.Time) *Service {
	return newTestServiceWithEmail(companies, repo, notifier, &fakeEmailService{}, now)
}

func newTestServiceWithEmail(companies *fakeCompanyRepo, repo *fakeMembershipRepo, notifier *fakeNotifier, emails *fakeEmailService, now time.Time) *Service {
	svc := NewService(repo, companies, notifier, emails, logger.NewLogger(nil))
	svc.clock = func() time.Time { return now }
	return svc
}

func companyWithExpiry(expiry *time.Time) *model.Company {
	c := &model.Company{
		Name:                "Test Co",
		Email:               "owner@testco.example",
		MembershipStatus:    model.MembershipStatusActive,
		MembershipExpiresAt: expiry,
	}
	c.ID = uuid.New()
	return c
}

func TestRenewRejectsNonStandardTerm(t *testing.T) {
	svc := newTestService(&fakeCompanyRepo{}, newFakeMembershipRepo(), &fakeNotifier{}, time.Now())

	for _, days := range []int{0, -30, 7, 31, 180} {
		_, err := svc.Renew(context.Background(), uuid.New(), days)
		require.Error(t, err)
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrValidation, appErr.Code)
	}
}

func TestRenewStartsFromNowWithoutPriorExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	company := companyWithExpiry(nil)
	companies := &fakeCompanyRepo{companies: map[uuid.UUID]*model.Company{company.ID: company}}
	repo := newFakeMembershipRepo()
	svc := newTestService(companies, repo, &fakeNotifier{}, now)

	newExpiry, err := svc.Renew(context.Background(), company.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 30), newExpiry)

	require.Len(t, repo.renewals, 1)
	applied := repo.renewals[0]
	assert.Equal(t, company.ID, applied.companyID)
	assert.Equal(t, newExpiry, applied.expiresAt)
	assert.Equal(t, now, applied.period.StartDate)
	assert.Equal(t, newExpiry, applied.period.EndDate)
	assert.Equal(t, 0, applied.period.NotificationSent)
	assert.Equal(t, float64(0), applied.period.PaymentAmount)
}

func TestRenewExtendsFromFutureExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 0, 10)
	company := companyWithExpiry(&expiry)
	companies := &fakeCompanyRepo{companies: map[uuid.UUID]*model.Company{company.ID: company}}
	svc := newTestService(companies, newFakeMembershipRepo(), &fakeNotifier{}, now)

	newExpiry, err := svc.Renew(context.Background(), company.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, expiry.AddDate(0, 0, 90), newExpiry)
}

func TestExtendRestartsFromNowWhenLapsed(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 0, -5)
	company := companyWithExpiry(&expiry)
	companies := &fakeCompanyRepo{companies: map[uuid.UUID]*model.Company{company.ID: company}}
	svc := newTestService(companies, newFakeMembershipRepo(), &fakeNotifier{}, now)

	newExpiry, err := svc.Extend(context.Background(), company.ID, 14)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 14), newExpiry)
}

func TestExtendAcceptsArbitraryPositiveDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	company := companyWithExpiry(nil)
	companies := &fakeCompanyRepo{companies: map[uuid.UUID]*model.Company{company.ID: company}}
	svc := newTestService(companies, newFakeMembershipRepo(), &fakeNotifier{}, now)

	_, err := svc.Extend(context.Background(), company.ID, 7)
	require.NoError(t, err)

	_, err = svc.Extend(context.Background(), company.ID, 0)
	require.Error(t, err)

	_, err = svc.Extend(context.Background(), company.ID, -1)
	require.Error(t, err)
}

func TestRenewUnknownCompany(t *testing.T) {
	companies := &fakeCompanyRepo{companies: map[uuid.UUID]*model.Company{}}
	svc := newTestService(companies, newFakeMembershipRepo(), &fakeNotifier{}, time.Now())

	_, err := svc.Renew(context.Background(), uuid.New(), 30)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestToggleValidation(t *testing.T) {
	svc := newTestService(&fakeCompanyRepo{}, newFakeMembershipRepo(), &fakeNotifier{}, time.Now())

	err := svc.Toggle(context.Background(), uuid.New(), "suspended")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestToggleUnknownCompany(t *testing.T) {
	repo := newFakeMembershipRepo()
	repo.missingOnSet = true
	svc := newTestService(&fakeCompanyRepo{}, repo, &fakeNotifier{}, time.Now())

	err := svc.Toggle(context.Background(), uuid.New(), model.MembershipStatusInactive)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSweepExpiresLapsedMembership(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(-time.Hour)
	company := companyWithExpiry(&expiry)

	repo := newFakeMembershipRepo()
	repo.active = []*model.Company{company}
	notifier := &fakeNotifier{}
	svc := newTestService(&fakeCompanyRepo{}, repo, notifier, now)

	result, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Expired)
	assert.Equal(t, model.MembershipStatusInactive, repo.statusSets[company.ID])

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, model.AccountTypeCompany, notifier.sent[0].accountType)
	assert.Equal(t, company.ID, notifier.sent[0].accountID)
}

func TestSweepSkipsCompaniesWithoutExpiry(t *testing.T) {
	repo := newFakeMembershipRepo()
	repo.active = []*model.Company{companyWithExpiry(nil)}
	notifier := &fakeNotifier{}
	svc := newTestService(&fakeCompanyRepo{}, repo, notifier, time.Now())

	result, err := svc.Sweep(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Expired)
	assert.Empty(t, result.Warned)
	assert.Empty(t, notifier.sent)
}

func sweepFixture(now time.Time, daysLeft, notificationSent int) (*fakeMembershipRepo, *model.Company, *model.MembershipPeriod) {
	expiry := now.Add(time.Duration(daysLeft) * 24 * time.Hour)
	company := companyWithExpiry(&expiry)

	period := &model.MembershipPeriod{
		ID:               uuid.New(),
		CompanyID:        company.ID,
		EndDate:          expiry,
		NotificationSent: notificationSent,
	}

	repo := newFakeMembershipRepo()
	repo.active = []*model.Company{company}
	repo.periods[company.ID] = period
	return repo, company, period
}

func TestSweepSendsWarningAtThreshold(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo, company, period := sweepFixture(now, 7, 0)
	notifier := &fakeNotifier{}
	svc := newTestService(&fakeCompanyRepo{}, repo, notifier, now)

	result, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{7: 1}, result.Warned)
	assert.Equal(t, 7, repo.sentPeriods[period.ID])

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, company.ID, notifier.sent[0].accountID)
}

func TestSweepDoesNotResendSameThreshold(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo, _, _ := sweepFixture(now, 7, 7)
	notifier := &fakeNotifier{}
	svc := newTestService(&fakeCompanyRepo{}, repo, notifier, now)

	result, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, result.Warned)
	assert.Empty(t, notifier.sent)
}

func TestSweepAdvancesToNextThreshold(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo, _, period := sweepFixture(now, 3, 7)
	notifier := &fakeNotifier{}
	svc := newTestService(&fakeCompanyRepo{}, repo, notifier, now)

	result, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{3: 1}, result.Warned)
	assert.Equal(t, 3, repo.sentPeriods[period.ID])
}

func TestSweepSkipsWarningWithoutCurrentPeriod(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(7 * 24 * time.Hour)
	company := companyWithExpiry(&expiry)

	repo := newFakeMembershipRepo()
	repo.active = []*model.Company{company}
	notifier := &fakeNotifier{}
	svc := newTestService(&fakeCompanyRepo{}, repo, notifier, now)

	result, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, result.Warned)
	assert.Empty(t, notifier.sent)
}

func TestSweepFiresAtMostOneThresholdPerCompany(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	repo, _, _ := sweepFixture(now, 1, 0)
	notifier := &fakeNotifier{}
	svc := newTestService(&fakeCompanyRepo{}, repo, notifier, now)

	result, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 1}, result.Warned)
	assert.Len(t, notifier.sent, 1)
}

func TestSweepExpiryNotificationFailureStillExpires(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(-time.Hour)
	company := companyWithExpiry(&expiry)

	repo := newFakeMembershipRepo()
	repo.active = []*model.Company{company}
	notifier := &fakeNotifier{err: assert.AnError}
	svc := newTestService(&fakeCompanyRepo{}, repo, notifier, now)

	result, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Expired)
	assert.Equal(t, model.MembershipStatusInactive, repo.statusSets[company.ID])
}

func TestSweepWarningAlsoEmailsCompany(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo, company, period := sweepFixture(now, 7, 0)
	emails := &fakeEmailService{}
	svc := newTestServiceWithEmail(&fakeCompanyRepo{}, repo, &fakeNotifier{}, emails, now)

	_, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)

	require.Len(t, emails.sent, 1)
	assert.Equal(t, company.Email, emails.sent[0].to)
	assert.Equal(t, company.Name, emails.sent[0].company)
	assert.Equal(t, 7, emails.sent[0].daysLeft)
	assert.Equal(t, 7, repo.sentPeriods[period.ID])
}

func TestSweepExpiryAlsoEmailsCompany(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(-time.Hour)
	company := companyWithExpiry(&expiry)

	repo := newFakeMembershipRepo()
	repo.active = []*model.Company{company}
	emails := &fakeEmailService{}
	svc := newTestServiceWithEmail(&fakeCompanyRepo{}, repo, &fakeNotifier{}, emails, now)

	result, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Expired)

	require.Len(t, emails.sent, 1)
	assert.Equal(t, company.Email, emails.sent[0].to)
	assert.True(t, emails.sent[0].expired)
}

func TestSweepEmailFailureStillRecordsWarning(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo, _, period := sweepFixture(now, 3, 7)
	emails := &fakeEmailService{err: assert.AnError}
	svc := newTestServiceWithEmail(&fakeCompanyRepo{}, repo, &fakeNotifier{}, emails, now)

	result, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{3: 1}, result.Warned)
	assert.Equal(t, 3, repo.sentPeriods[period.ID])
}
