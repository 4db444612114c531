package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"growcoach_backend/internal/logger"
	"growcoach_backend/internal/services"
)

// FileHandler serves locally stored uploads.
type FileHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewFileHandler(base *BaseHandler, uploadService services.UploadService) *FileHandler {
	return &FileHandler{BaseHandler: base, uploadService: uploadService}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/uploads/*key", h.Serve)
}

func (h *FileHandler) Serve(c *gin.Context) {
	key := c.Param("key")
	if len(key) > 0 && key[0] == '/' {
		key = key[1:]
	}

	reader, contentType, err := h.uploadService.OpenFile(c.Request.Context(), key)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWarn(c.Request.Context(), "failed to stream file", "key", key, "error", err)
	}
}
