package review

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/service/review"
	"github.com/craftlink/platform-api/pkg/httputil"
)

type Handler struct {
	service *review.Service
}

func NewHandler(service *review.Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	UserID    uuid.UUID `json:"userId" binding:"required"`
	CompanyID uuid.UUID `json:"companyId" binding:"required"`
	Rating    int       `json:"rating" binding:"required"`
	Comment   string    `json:"comment"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "userId, companyId and rating are required")
		return
	}

	r := &model.Review{
		UserID:    req.UserID,
		CompanyID: req.CompanyID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.service.Create(c.Request.Context(), r); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, gin.H{"review": r})
}

type deleteRequest struct {
	RequesterID uuid.UUID `json:"requesterId" binding:"required"`
}

// Delete removes a review. Only its author may delete it.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid review id")
		return
	}

	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "requesterId is required")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, req.RequesterID); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

func (h *Handler) ListForCompany(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid company id")
		return
	}

	reviews, err := h.service.ListForCompany(c.Request.Context(), companyID)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"reviews": reviews})
}
