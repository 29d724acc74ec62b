package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baotran/docqa-be/middleware"
	"github.com/baotran/docqa-be/service"
	"github.com/baotran/docqa-be/types"
)

// Uploader processes one uploaded file into a persisted document.
type Uploader interface {
	ProcessUpload(ctx context.Context, userID string, file *multipart.FileHeader) (*types.IngestResult, error)
}

type UploadHandler struct {
	fileService Uploader
}

func NewUploadHandler(fileService Uploader) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
	}
}

func (h *UploadHandler) HandleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "No file uploaded",
		})
		return
	}

	if file.Size > service.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, types.DataResponse{
			Status:  false,
			Message: "File too large. Max 1MB allowed.",
		})
		return
	}

	result, err := h.fileService.ProcessUpload(c.Request.Context(), middleware.UserID(c), file)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrUnsupportedFileType) || errors.Is(err, service.ErrEmptyDocument) {
			status = http.StatusBadRequest
		}
		c.JSON(status, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, types.DataResponse{
		Status: true,
		Data:   result,
	})
}
