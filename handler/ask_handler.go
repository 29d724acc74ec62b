package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/baotran/docqa-be/middleware"
	"github.com/baotran/docqa-be/types"
)

// Asker answers a question from a user's corpus, optionally scoped to one
// document.
type Asker interface {
	Ask(ctx context.Context, userID, question, documentID string) (*types.AskResult, error)
}

type AskHandler struct {
	askService Asker
}

func NewAskHandler(askService Asker) *AskHandler {
	return &AskHandler{
		askService: askService,
	}
}

func (h *AskHandler) HandleAsk(c *gin.Context) {
	var req types.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Invalid request body",
		})
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  false,
			Message: "Question is required",
		})
		return
	}

	result, err := h.askService.Ask(c.Request.Context(), middleware.UserID(c), question, req.DocumentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{
			Status:  false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
