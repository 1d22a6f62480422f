package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/common/middleware"
	"matrimony-backend/internal/features/admin/service"
	"matrimony-backend/internal/features/profile/models"
)

type AdminHandler struct {
	service service.AdminService
	auth    gin.HandlerFunc
}

func NewAdminHandler(service service.AdminService, auth gin.HandlerFunc) *AdminHandler {
	return &AdminHandler{service: service, auth: auth}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin", h.auth, middleware.RequireAdmin())
	{
		admin.GET("/users", h.listUsers)
		admin.POST("/users", h.createUser)
		admin.PUT("/users/:id", h.editUser)
		admin.PATCH("/users/:id/status", h.setStatus)
		admin.DELETE("/users/:id", h.deleteUser)
	}
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	groups, err := h.service.ListByStatus(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"pending":  toResponses(groups.Pending),
		"approved": toResponses(groups.Approved),
		"rejected": toResponses(groups.Rejected),
	})
}

type createUserRequest struct {
	Mobile        string   `json:"mobile"`
	Password      string   `json:"password"`
	Name          string   `json:"name"`
	ProfileType   string   `json:"profile_type"`
	Phone         string   `json:"phone"`
	DateOfBirth   string   `json:"date_of_birth"`
	Height        string   `json:"height"`
	Education     string   `json:"education"`
	Occupation    string   `json:"occupation"`
	Salary        string   `json:"salary"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Religion      string   `json:"religion"`
	MotherTongue  string   `json:"mother_tongue"`
	FamilyType    string   `json:"family_type"`
	About         string   `json:"about"`
	ProfileImage  string   `json:"profile_image"`
	ProfileImages []string `json:"profile_images"`
}

func (r *createUserRequest) toInput(actingAdminID, editingUserID string) (service.CreateInput, error) {
	var profileType models.ProfileType
	if r.ProfileType != "" {
		t, err := models.ParseProfileType(r.ProfileType)
		if err != nil {
			return service.CreateInput{}, apperrors.NewValidationError("profile_type", err.Error())
		}
		profileType = t
	}

	return service.CreateInput{
		EditingUserID: editingUserID,
		Mobile:        r.Mobile,
		Password:      r.Password,
		Name:          r.Name,
		ProfileType:   profileType,
		Phone:         r.Phone,
		DateOfBirth:   r.DateOfBirth,
		Height:        r.Height,
		Education:     r.Education,
		Occupation:    r.Occupation,
		Salary:        r.Salary,
		City:          r.City,
		State:         r.State,
		Religion:      r.Religion,
		MotherTongue:  r.MotherTongue,
		FamilyType:    r.FamilyType,
		About:         r.About,
		ProfileImage:  r.ProfileImage,
		ProfileImages: r.ProfileImages,
		ActingAdminID: actingAdminID,
	}, nil
}

func (h *AdminHandler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	input, err := req.toInput(middleware.CurrentProfile(c).ID, "")
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	p, err := h.service.CreateProfile(c.Request.Context(), input)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	// Echo the credentials so the admin can hand them to the user.
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    p.ToResponse(),
		"credentials": gin.H{
			"mobile":   req.Mobile,
			"password": req.Password,
		},
	})
}

func (h *AdminHandler) editUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	input, err := req.toInput(middleware.CurrentProfile(c).ID, c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	p, err := h.service.CreateProfile(c.Request.Context(), input)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": p.ToResponse()})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) setStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("status", err.Error()))
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) deleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func toResponses(profiles []*models.Profile) []*models.ProfileResponse {
	responses := make([]*models.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, p.ToResponse())
	}
	return responses
}
