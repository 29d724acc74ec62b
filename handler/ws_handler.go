package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/baotran/docqa-be/middleware"
	"github.com/baotran/docqa-be/service"
)

type WebSocketHandler struct {
	wsService *service.WebSocketService
}

func NewWebSocketHandler(wsService *service.WebSocketService) *WebSocketHandler {
	return &WebSocketHandler{
		wsService: wsService,
	}
}

func (h *WebSocketHandler) HandleAsk(c *gin.Context) {
	h.wsService.HandleAsk(c.Writer, c.Request, middleware.UserID(c))
}
