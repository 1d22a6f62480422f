package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matrimony-backend/internal/common/middleware"
	"matrimony-backend/internal/features/browse/service"
	"matrimony-backend/internal/features/profile/models"
)

type BrowseHandler struct {
	service service.BrowseService
	auth    gin.HandlerFunc
}

func NewBrowseHandler(service service.BrowseService, auth gin.HandlerFunc) *BrowseHandler {
	return &BrowseHandler{service: service, auth: auth}
}

func (h *BrowseHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/browse", h.auth, h.browse)
}

func (h *BrowseHandler) browse(c *gin.Context) {
	viewer := middleware.CurrentProfile(c)

	candidates, err := h.service.ListCandidates(c.Request.Context(), viewer)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	filtered := service.Filter(candidates, service.Criteria{
		Query:     c.Query("q"),
		State:     c.Query("state"),
		Religion:  c.Query("religion"),
		Education: c.Query("education"),
	})

	responses := make([]*models.ProfileResponse, 0, len(filtered))
	for _, p := range filtered {
		responses = append(responses, p.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"profiles": responses,
		"total":    len(candidates),
		"showing":  len(filtered),
		"facets":   service.FacetsOf(candidates),
	})
}
