package support

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/service/support"
	"github.com/craftlink/platform-api/pkg/httputil"
)

type Handler struct {
	service *support.Service
}

func NewHandler(service *support.Service) *Handler {
	return &Handler{service: service}
}

type openRequest struct {
	OpenedByID   uuid.UUID `json:"openedById" binding:"required"`
	OpenedByType string    `json:"openedByType" binding:"required"`
	OpenerEmail  string    `json:"openerEmail" binding:"required,email"`
	Subject      string    `json:"subject" binding:"required"`
	Message      string    `json:"message" binding:"required"`
}

func (h *Handler) Open(c *gin.Context) {
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "openedById, openedByType, openerEmail, subject and message are required")
		return
	}

	ticket := &model.SupportTicket{
		OpenedByID:   req.OpenedByID,
		OpenedByType: model.AccountType(req.OpenedByType),
		OpenerEmail:  req.OpenerEmail,
		Subject:      req.Subject,
		Message:      req.Message,
	}
	if err := h.service.Open(c.Request.Context(), ticket); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, gin.H{"ticket": ticket})
}

type answerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// Answer records the admin's reply and notifies the ticket opener.
func (h *Handler) Answer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid ticket id")
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "answer is required")
		return
	}

	if err := h.service.Answer(c.Request.Context(), id, req.Answer); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

func (h *Handler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid ticket id")
		return
	}

	if err := h.service.Close(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid ticket id")
		return
	}

	ticket, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"ticket": ticket})
}

func (h *Handler) List(c *gin.Context) {
	tickets, err := h.service.List(c.Request.Context(), model.TicketStatus(c.Query("status")))
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"tickets": tickets})
}
