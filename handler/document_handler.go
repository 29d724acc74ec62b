package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baotran/docqa-be/database"
	"github.com/baotran/docqa-be/middleware"
	"github.com/baotran/docqa-be/types"
)

type DocumentHandler struct {
	store database.VectorStore
}

func NewDocumentHandler(store database.VectorStore) *DocumentHandler {
	return &DocumentHandler{
		store: store,
	}
}

// HandleListDocuments returns the caller's documents, newest first.
func (h *DocumentHandler) HandleListDocuments(c *gin.Context) {
	docs, err := h.store.ListDocuments(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: "Failed to list documents",
		})
		return
	}

	infos := make([]types.DocumentInfo, 0, len(docs))
	for _, doc := range docs {
		infos = append(infos, types.DocumentInfo{
			ID:        doc.ID,
			Name:      doc.Name,
			CreatedAt: doc.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   types.ListDocumentsResponse{Documents: infos},
	})
}
