package http

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "matrimony-backend/internal/common/errors"
	"matrimony-backend/internal/common/middleware"
	"matrimony-backend/internal/features/media/service"
)

type MediaHandler struct {
	service *service.Service
	auth    gin.HandlerFunc
}

func NewMediaHandler(service *service.Service, auth gin.HandlerFunc) *MediaHandler {
	return &MediaHandler{service: service, auth: auth}
}

func (h *MediaHandler) RegisterRoutes(router *gin.RouterGroup) {
	media := router.Group("/media", h.auth)
	{
		media.POST("/upload", h.upload)
		media.DELETE("", h.remove)
	}
}

type deleteRequest struct {
	URL string `json:"url" binding:"required"`
}

// remove deletes a previously uploaded image, typically after it has been
// replaced on a profile.
func (h *MediaHandler) remove(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("body", err.Error()))
		return
	}

	if err := h.service.DeleteByURL(c.Request.Context(), req.URL); err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// upload accepts one image under the "image" form field, or several under
// "images" for the multi-photo variant.
func (h *MediaHandler) upload(c *gin.Context) {
	viewer := middleware.CurrentProfile(c)

	form, err := c.MultipartForm()
	if err != nil {
		middleware.RespondError(c, apperrors.NewValidationError("form", err.Error()))
		return
	}

	if files := form.File["images"]; len(files) > 0 {
		uploads := make([]service.File, 0, len(files))
		for _, header := range files {
			file, err := readUpload(header)
			if err != nil {
				middleware.RespondError(c, err)
				return
			}
			uploads = append(uploads, file)
		}

		urls, err := h.service.UploadMany(c.Request.Context(), viewer.ID, uploads)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "urls": urls})
		return
	}

	headers := form.File["image"]
	if len(headers) == 0 {
		middleware.RespondError(c, apperrors.NewValidationError("image", "no image provided"))
		return
	}

	file, err := readUpload(headers[0])
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	url, err := h.service.Upload(c.Request.Context(), viewer.ID, file)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}

func readUpload(header *multipart.FileHeader) (service.File, error) {
	reader, err := header.Open()
	if err != nil {
		return service.File{}, apperrors.NewUploadFailed(err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return service.File{}, apperrors.NewUploadFailed(err)
	}

	return service.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
