package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scolink/community-service/internal/services"
	"github.com/scolink/community-service/internal/storage"
	"github.com/scolink/community-service/internal/utils"
)

type UploadHandler struct {
	BaseHandler
	uploadService services.UploadService
	fileStore     *storage.FileStore
}

func NewUploadHandler(uploadService services.UploadService, fileStore *storage.FileStore, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   NewBaseHandler(logger),
		uploadService: uploadService,
		fileStore:     fileStore,
	}
}

// Upload accepts a multipart file and stores it
func (h *UploadHandler) Upload(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "A file field is required", err.Error()))
		return
	}

	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorJSON("bad_request", "Could not read the uploaded file", err.Error()))
		return
	}
	defer src.Close()

	upload, err := h.uploadService.Upload(c.Request.Context(), user, header.Filename, header.Header.Get("Content-Type"), header.Size, src)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, upload)
}

// Serve streams a stored file back to the client
func (h *UploadHandler) Serve(c *gin.Context) {
	upload, err := h.uploadService.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if upload.ContentType != "" {
		c.Header("Content-Type", upload.ContentType)
	}
	c.File(h.fileStore.Path(upload.StoredName))
}
