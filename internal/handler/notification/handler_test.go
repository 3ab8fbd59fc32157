package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftlink/platform-api/internal/model"
	notificationservice "github.com/craftlink/platform-api/internal/service/notification"
)

type stubService struct {
	created       *model.Notification
	assigned      int
	unread        int
	views         []*model.UserNotificationView
	markedRead    []uuid.UUID
	markedAllFor  *model.Recipient
	deletedIDs    []uuid.UUID
	listRecipient *model.Recipient
	err           error
}

func (s *stubService) Create(ctx context.Context, message string, target model.NotificationTarget, targetEmail *string, createdBy string) (*model.Notification, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	s.created = &model.Notification{Message: message, Target: target, TargetEmail: targetEmail, CreatedBy: createdBy}
	return s.created, s.assigned, nil
}
func (s *stubService) NotifyAccount(ctx context.Context, accountType model.AccountType, accountID uuid.UUID, message string) error {
	return s.err
}
func (s *stubService) ListForRecipient(ctx context.Context, recipient model.Recipient) ([]*model.UserNotificationView, error) {
	s.listRecipient = &recipient
	return s.views, s.err
}
func (s *stubService) UnreadCount(ctx context.Context, recipient model.Recipient) (int, error) {
	return s.unread, s.err
}
func (s *stubService) MarkRead(ctx context.Context, id uuid.UUID) error {
	s.markedRead = append(s.markedRead, id)
	return s.err
}
func (s *stubService) MarkAllRead(ctx context.Context, recipient model.Recipient) error {
	s.markedAllFor = &recipient
	return s.err
}
func (s *stubService) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	s.deletedIDs = ids
	return int64(len(ids)), s.err
}

func setupRouter(svc notificationservice.Servicer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.POST("/notifications/create", h.Create)
	r.GET("/notifications", h.List)
	r.POST("/notifications/mark-read", h.MarkRead)
	r.POST("/notifications/mark-all-read", h.MarkAllRead)
	r.POST("/notifications/delete", h.Delete)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateResponseShape(t *testing.T) {
	svc := &stubService{assigned: 5}
	r := setupRouter(svc)

	w := postJSON(r, "/notifications/create", gin.H{
		"message":   "maintenance window tonight",
		"target":    "all",
		"createdBy": "ops",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(5), resp["assignedCount"])
	_, ok := resp["notification"]
	assert.True(t, ok)
}

func TestCreateRequiresMessage(t *testing.T) {
	r := setupRouter(&stubService{})

	w := postJSON(r, "/notifications/create", gin.H{"target": "all"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListReturnsNotificationsAndCount(t *testing.T) {
	svc := &stubService{unread: 2, views: []*model.UserNotificationView{}}
	r := setupRouter(svc)

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/notifications?userId="+userID.String()+"&accountType=user&email=a@b.com", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["unreadCount"])
	_, ok := resp["notifications"]
	assert.True(t, ok)

	// Both recipient keys were forwarded.
	require.NotNil(t, svc.listRecipient)
	require.NotNil(t, svc.listRecipient.ByID)
	assert.Equal(t, userID, svc.listRecipient.ByID.UserID)
	require.NotNil(t, svc.listRecipient.ByEmail)
	assert.Equal(t, "a@b.com", *svc.listRecipient.ByEmail)
}

func TestListOnlyCount(t *testing.T) {
	svc := &stubService{unread: 7}
	r := setupRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/notifications?userId="+uuid.New().String()+"&accountType=company&onlyCount=true", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(7), resp["unreadCount"])
	_, ok := resp["notifications"]
	assert.False(t, ok)
}

func TestListRequiresRecipient(t *testing.T) {
	r := setupRouter(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkReadFieldName(t *testing.T) {
	svc := &stubService{}
	r := setupRouter(svc)

	id := uuid.New()
	w := postJSON(r, "/notifications/mark-read", gin.H{"userNotificationId": id})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, svc.markedRead, 1)
	assert.Equal(t, id, svc.markedRead[0])
}

func TestMarkAllReadByEmailOnly(t *testing.T) {
	svc := &stubService{}
	r := setupRouter(svc)

	w := postJSON(r, "/notifications/mark-all-read", gin.H{"userEmail": "a@b.com"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.markedAllFor)
	assert.Nil(t, svc.markedAllFor.ByID)
	require.NotNil(t, svc.markedAllFor.ByEmail)
	assert.Equal(t, "a@b.com", *svc.markedAllFor.ByEmail)
}

func TestDeleteResponseShape(t *testing.T) {
	svc := &stubService{}
	r := setupRouter(svc)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	w := postJSON(r, "/notifications/delete", gin.H{"userNotificationIds": ids})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, float64(2), resp["deleted"])
	assert.Equal(t, ids, svc.deletedIDs)
}
