package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/common/middleware"
	"matrimony-backend/internal/features/auth/service"
	"matrimony-backend/internal/features/profile/models"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
		auth.GET("/session", h.session)
	}
}

type registerRequest struct {
	Mobile      string `json:"mobile" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Name        string `json:"name" binding:"required"`
	ProfileType string `json:"profile_type" binding:"required"`
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	profileType, err := models.ParseProfileType(req.ProfileType)
	if err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("profile_type", err.Error()))
		return
	}

	p, err := h.service.Register(c.Request.Context(), service.RegisterInput{
		Mobile:      req.Mobile,
		Password:    req.Password,
		Name:        req.Name,
		ProfileType: profileType,
	})
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	// Registration is not a login: the record awaits admin approval, so
	// the response carries the distinct pending signal instead of a
	// session.
	pending := apperrors.NewRegistrationPending()
	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"code":    pending.Code,
		"message": pending.Message,
		"user_id": p.ID,
	})
}

type loginRequest struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
	// bride, groom, or none for an admin-login attempt.
	UserType string `json:"user_type"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	var expected models.ProfileType
	if req.UserType != "" && req.UserType != "none" {
		t, err := models.ParseProfileType(req.UserType)
		if err != nil {
			middleware.RespondError(c, apperrors.NewValidationError("user_type", err.Error()))
			return
		}
		expected = t
	}

	p, err := h.service.Login(c.Request.Context(), req.Mobile, req.Password, expected)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    p.ToResponse(),
	})
}

func (h *AuthHandler) logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context()); err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) session(c *gin.Context) {
	p, err := h.service.Restore(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	if p == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": p.ToResponse()})
}
