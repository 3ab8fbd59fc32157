package membership

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/service/membership"
	"github.com/craftlink/platform-api/pkg/httputil"
)

type Handler struct {
	service membership.Servicer
}

func NewHandler(service membership.Servicer) *Handler {
	return &Handler{service: service}
}

type renewRequest struct {
	CompanyID uuid.UUID `json:"companyId" binding:"required"`
	Days      int       `json:"days" binding:"required"`
}

// Renew handles POST /membership/renew. Companies purchase one of the
// fixed renewal terms.
func (h *Handler) Renew(c *gin.Context) {
	var req renewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "companyId and days are required")
		return
	}

	newExpiry, err := h.service.Renew(c.Request.Context(), req.CompanyID, req.Days)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"newExpiry": newExpiry.Format(time.RFC3339)})
}

// Extend handles POST /admin/memberships/extend. Admins may grant any
// positive number of days.
func (h *Handler) Extend(c *gin.Context) {
	var req renewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "companyId and days are required")
		return
	}

	newExpiry, err := h.service.Extend(c.Request.Context(), req.CompanyID, req.Days)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"newExpiry": newExpiry.Format(time.RFC3339)})
}

type toggleRequest struct {
	CompanyID uuid.UUID `json:"companyId" binding:"required"`
	Status    string    `json:"status" binding:"required"`
}

// Toggle handles POST /admin/memberships/toggle.
func (h *Handler) Toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "companyId and status are required")
		return
	}

	if err := h.service.Toggle(c.Request.Context(), req.CompanyID, model.MembershipStatus(req.Status)); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

// List handles GET /admin/memberships. Active companies come first,
// those closest to expiry at the top.
func (h *Handler) List(c *gin.Context) {
	companies, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"companies": companies})
}

// History handles GET /admin/memberships/:id/history.
func (h *Handler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid company id")
		return
	}

	periods, err := h.service.History(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"periods": periods})
}
