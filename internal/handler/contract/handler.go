package contract

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/service/contract"
	"github.com/craftlink/platform-api/pkg/httputil"
)

type Handler struct {
	service contract.Servicer
}

func NewHandler(service contract.Servicer) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	ConversationID uuid.UUID `json:"conversationId" binding:"required"`
	UserID         uuid.UUID `json:"userId" binding:"required"`
	CompanyID      uuid.UUID `json:"companyId" binding:"required"`
	Action         string    `json:"action" binding:"required"`
	Reason         string    `json:"reason"`
	CreatedByType  string    `json:"createdByType" binding:"required"`
	CreatedByID    uuid.UUID `json:"createdById" binding:"required"`
}

// Create handles POST /contracts. Either party records the outcome of a
// contract; the counterparty is notified in-app.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "conversationId, userId, companyId, action, createdByType and createdById are required")
		return
	}

	event, err := h.service.Create(c.Request.Context(), contract.CreateInput{
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
		CompanyID:      req.CompanyID,
		Action:         model.ContractAction(req.Action),
		Reason:         req.Reason,
		CreatedByType:  model.AccountType(req.CreatedByType),
		CreatedByID:    req.CreatedByID,
	})
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, gin.H{"event": event})
}

// List handles GET /admin/contracts with optional status, action and
// conversationId query filters.
func (h *Handler) List(c *gin.Context) {
	filters := &model.ContractEventFilters{}

	if status := c.Query("status"); status != "" {
		filters.Status = model.ContractEventStatus(status)
	}
	if action := c.Query("action"); action != "" {
		filters.Action = model.ContractAction(action)
	}
	if conv := c.Query("conversationId"); conv != "" {
		id, err := uuid.Parse(conv)
		if err != nil {
			httputil.BadRequest(c, "invalid conversationId")
			return
		}
		filters.ConversationID = &id
	}

	events, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"events": events})
}

type updateStatusRequest struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Status string    `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /admin/contracts.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "id and status are required")
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), req.ID, model.ContractEventStatus(req.Status)); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

// PendingCount handles HEAD /admin/contracts. The count of events
// awaiting review is returned in the x-pending-count header so the
// admin dashboard can poll cheaply.
func (h *Handler) PendingCount(c *gin.Context) {
	count, err := h.service.CountPending(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("x-pending-count", strconv.Itoa(count))
	c.Status(http.StatusOK)
}
