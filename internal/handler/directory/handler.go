package directory

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/service/directory"
	"github.com/craftlink/platform-api/pkg/httputil"
)

type Handler struct {
	service *directory.Service
}

func NewHandler(service *directory.Service) *Handler {
	return &Handler{service: service}
}

type cityRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) CreateCity(c *gin.Context) {
	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "name is required")
		return
	}

	city := &model.City{Name: req.Name}
	if err := h.service.CreateCity(c.Request.Context(), city); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, gin.H{"city": city})
}

func (h *Handler) UpdateCity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid city id")
		return
	}

	var req cityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "name is required")
		return
	}

	city := &model.City{Name: req.Name}
	city.ID = id
	if err := h.service.UpdateCity(c.Request.Context(), city); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"city": city})
}

func (h *Handler) DeleteCity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid city id")
		return
	}

	if err := h.service.DeleteCity(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

func (h *Handler) ListCities(c *gin.Context) {
	cities, err := h.service.ListCities(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"cities": cities})
}

type sectorRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *Handler) CreateSector(c *gin.Context) {
	var req sectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "name is required")
		return
	}

	sector := &model.Sector{Name: req.Name}
	if err := h.service.CreateSector(c.Request.Context(), sector); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, gin.H{"sector": sector})
}

func (h *Handler) UpdateSector(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid sector id")
		return
	}

	var req sectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "name is required")
		return
	}

	sector := &model.Sector{Name: req.Name}
	sector.ID = id
	if err := h.service.UpdateSector(c.Request.Context(), sector); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"sector": sector})
}

func (h *Handler) DeleteSector(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid sector id")
		return
	}

	if err := h.service.DeleteSector(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

func (h *Handler) ListSectors(c *gin.Context) {
	sectors, err := h.service.ListSectors(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"sectors": sectors})
}

type serviceRequest struct {
	Name     string    `json:"name" binding:"required"`
	SectorID uuid.UUID `json:"sectorId" binding:"required"`
}

func (h *Handler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "name and sectorId are required")
		return
	}

	svc := &model.Service{Name: req.Name, SectorID: req.SectorID}
	if err := h.service.CreateService(c.Request.Context(), svc); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, gin.H{"service": svc})
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid service id")
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "name and sectorId are required")
		return
	}

	svc := &model.Service{Name: req.Name, SectorID: req.SectorID}
	svc.ID = id
	if err := h.service.UpdateService(c.Request.Context(), svc); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"service": svc})
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid service id")
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

func (h *Handler) ListServices(c *gin.Context) {
	var sectorID *uuid.UUID
	if s := c.Query("sectorId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httputil.BadRequest(c, "invalid sectorId")
			return
		}
		sectorID = &id
	}

	services, err := h.service.ListServices(c.Request.Context(), sectorID)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"services": services})
}
