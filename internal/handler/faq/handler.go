package faq

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/service/faq"
	"github.com/craftlink/platform-api/pkg/httputil"
)

type Handler struct {
	service *faq.Service
}

func NewHandler(service *faq.Service) *Handler {
	return &Handler{service: service}
}

type faqRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	Position int    `json:"position"`
}

func (h *Handler) Create(c *gin.Context) {
	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "question and answer are required")
		return
	}

	entry := &model.FAQ{
		Question: req.Question,
		Answer:   req.Answer,
		Position: req.Position,
	}
	if err := h.service.Create(c.Request.Context(), entry); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, gin.H{"faq": entry})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid faq id")
		return
	}

	var req faqRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "question and answer are required")
		return
	}

	entry := &model.FAQ{
		Question: req.Question,
		Answer:   req.Answer,
		Position: req.Position,
	}
	entry.ID = id
	if err := h.service.Update(c.Request.Context(), entry); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"faq": entry})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid faq id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

func (h *Handler) List(c *gin.Context) {
	faqs, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"faqs": faqs})
}
