package user

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/craftlink/platform-api/internal/model"
	"github.com/craftlink/platform-api/internal/service/user"
	"github.com/craftlink/platform-api/pkg/httputil"
)

type Handler struct {
	service *user.Service
}

func NewHandler(service *user.Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "name, email and password are required")
		return
	}

	u := &model.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := h.service.Create(c.Request.Context(), u, req.Password); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, gin.H{"user": u})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid user id")
		return
	}

	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"user": u})
}

type updateRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid user id")
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "name and email are required")
		return
	}

	u := &model.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	u.ID = id
	if err := h.service.Update(c.Request.Context(), u); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"user": u})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.BadRequest(c, "invalid user id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{})
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, gin.H{"users": users})
}
