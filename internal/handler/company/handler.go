package company

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/service/company"
	"github.com/craftlink/platform-api/pkg/httputil"
)

type Handler struct {
	service *company.Service
}

func NewHandler(service *company.Service) *Handler {
	return &Handler{service: service}
}

type companyRequest struct {
	Name     string    `json:"name" binding:"required"`
	Email    string    `json:"email" binding:"required,email"`
	Phone    string    `json:"phone"`
	CityID   uuid.UUID `json:"cityId" binding:"required"`
	SectorID uuid.UUID `json:"sectorId" binding:"required"`
	About    string    `json:"about"`
}

func (h *Handler) Create(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "name, email, cityId and sectorId are required")
		return
	}

	co := &model.Company{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		CityID:           req.CityID,
		SectorID:         req.SectorID,
		About:            req.About,
		MembershipStatus: model.MembershipStatusInactive,
	}
	if err := h.service.Create(c.Request.Context(), co); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, gin.H{"company": co})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid company id")
		return
	}

	co, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"company": co})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid company id")
		return
	}

	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "name, email, cityId and sectorId are required")
		return
	}

	co := &model.Company{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		CityID:   req.CityID,
		SectorID: req.SectorID,
		About:    req.About,
	}
	co.ID = id
	if err := h.service.Update(c.Request.Context(), co); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"company": co})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid company id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

func (h *Handler) List(c *gin.Context) {
	filters := &model.CompanyFilters{}

	if s := c.Query("cityId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httputil.BadRequest(c, "invalid cityId")
			return
		}
		filters.CityID = &id
	}
	if s := c.Query("sectorId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httputil.BadRequest(c, "invalid sectorId")
			return
		}
		filters.SectorID = &id
	}
	if s := c.Query("status"); s != "" {
		filters.Status = model.MembershipStatus(s)
	}

	companies, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"companies": companies})
}
