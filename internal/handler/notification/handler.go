package notification

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/service/notification"
	"github.com/craftlink/platform-api/pkg/httputil"
)

type Handler struct {
	service notification.Servicer
}

func NewHandler(service notification.Servicer) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Message     string  `json:"message" binding:"required"`
	Target      string  `json:"target" binding:"required"`
	TargetEmail *string `json:"targetEmail"`
	CreatedBy   string  `json:"createdBy"`
}

// Create handles POST /notifications/create. Admins broadcast to users,
// companies, everyone, or a single address.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "message and target are required")
		return
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = c.GetString("admin_id")
	}

	n, assigned, err := h.service.Create(c.Request.Context(), req.Message, model.NotificationTarget(req.Target), req.TargetEmail, createdBy)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, gin.H{
		"notification":  n,
		"assignedCount": assigned,
	})
}

// recipientFromQuery builds the recipient from the userId, accountType
// and email query parameters. The email is matched alongside the id so
// deliveries addressed by either key are found.
func recipientFromQuery(c *gin.Context) (model.Recipient, bool) {
	accountType := model.AccountType(c.Query("accountType"))
	email := c.Query("email")

	if idStr := c.Query("userId"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil || !accountType.Valid() {
			return model.Recipient{}, false
		}
		r := model.RecipientByID(id, accountType)
		if email != "" {
			r = r.WithEmail(email)
		}
		return r, true
	}

	if email != "" {
		return model.RecipientByEmail(email), true
	}

	return model.Recipient{}, false
}

// List handles GET /notifications. With onlyCount=true only the unread
// counter is returned.
func (h *Handler) List(c *gin.Context) {
	recipient, ok := recipientFromQuery(c)
	if !ok {
		httputil.BadRequest(c, "userId with accountType, or email, is required")
		return
	}

	unread, err := h.service.UnreadCount(c.Request.Context(), recipient)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	if c.Query("onlyCount") == "true" {
		httputil.OK(c, gin.H{"unreadCount": unread})
		return
	}

	notifications, err := h.service.ListForRecipient(c.Request.Context(), recipient)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

type markReadRequest struct {
	ID uuid.UUID `json:"userNotificationId" binding:"required"`
}

// MarkRead handles POST /notifications/mark-read.
func (h *Handler) MarkRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "userNotificationId is required")
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), req.ID); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

type markAllReadRequest struct {
	UserID      *uuid.UUID `json:"userId"`
	AccountType string     `json:"accountType"`
	Email       string     `json:"userEmail"`
}

// MarkAllRead handles POST /notifications/mark-all-read.
func (h *Handler) MarkAllRead(c *gin.Context) {
	var req markAllReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body")
		return
	}

	var recipient model.Recipient
	switch {
	case req.UserID != nil:
		accountType := model.AccountType(req.AccountType)
		if !accountType.Valid() {
			httputil.BadRequest(c, "accountType must be user or company")
			return
		}
		recipient = model.RecipientByID(*req.UserID, accountType)
		if req.Email != "" {
			recipient = recipient.WithEmail(req.Email)
		}
	case req.Email != "":
		recipient = model.RecipientByEmail(req.Email)
	default:
		httputil.BadRequest(c, "userId with accountType, or email, is required")
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), recipient); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

type deleteRequest struct {
	IDs []uuid.UUID `json:"userNotificationIds" binding:"required"`
}

// Delete handles POST /notifications/delete. Only the listed delivery
// rows are removed.
func (h *Handler) Delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "userNotificationIds is required")
		return
	}

	deleted, err := h.service.DeleteMany(c.Request.Context(), req.IDs)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"deleted": deleted})
}
