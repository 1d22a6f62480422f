package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/common/middleware"
	"matrimony-backend/internal/features/profile/models"
	"matrimony-backend/internal/features/profile/service"
)

type ProfileHandler struct {
	service service.ProfileService
	auth    gin.HandlerFunc
}

func NewProfileHandler(service service.ProfileService, auth gin.HandlerFunc) *ProfileHandler {
	return &ProfileHandler{service: service, auth: auth}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profiles := router.Group("/profiles", h.auth)
	{
		profiles.GET("/me", h.me)
		profiles.PUT("/me", h.update)
	}
}

func (h *ProfileHandler) me(c *gin.Context) {
	viewer := middleware.CurrentProfile(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": viewer.ToResponse()})
}

func (h *ProfileHandler) update(c *gin.Context) {
	viewer := middleware.CurrentProfile(c)

	var upd models.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	p, err := h.service.UpdateProfile(c.Request.Context(), viewer.ID, &upd)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": p.ToResponse()})
}
