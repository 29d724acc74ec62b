package service

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/baotran/docqa-be/types"
)

// WebSocketService answers questions over a websocket, streaming answer text
// as it is generated instead of waiting for the full completion.
type WebSocketService struct {
	ask      *AskService
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewWebSocketService(ask *AskService, logger *zap.Logger) *WebSocketService {
	return &WebSocketService{
		ask: ask,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
		logger: logger,
	}
}

// HandleAsk upgrades the connection and serves ask requests until the client
// goes away. Frames in: {type:"ask", payload:{question, documentId}}.
// Frames out: a stream of "answer" deltas, one "sources" frame, then "done".
func (s *WebSocketService) HandleAsk(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		var req types.WebsocketRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		switch req.Type {
		case types.TypeWebsocketPing:
			s.send(conn, types.WebsocketResponse{Type: types.TypeWebsocketPong})
		case types.TypeWebsocketAsk:
			s.serveAsk(ctx, conn, userID, req.Payload)
		default:
			s.send(conn, types.WebsocketResponse{
				Type:    types.TypeWebsocketError,
				Payload: "unknown message type: " + req.Type,
			})
		}
	}
}

func (s *WebSocketService) serveAsk(ctx context.Context, conn *websocket.Conn, userID string, req types.AskRequest) {
	if req.Question == "" {
		s.send(conn, types.WebsocketResponse{
			Type:    types.TypeWebsocketError,
			Payload: "question is required",
		})
		return
	}

	sources, err := s.ask.AskStream(ctx, userID, req.Question, req.DocumentID, func(delta string) {
		if delta == "" {
			return
		}
		s.send(conn, types.WebsocketResponse{
			Type:    types.TypeWebsocketAnswer,
			Payload: delta,
		})
	})
	if err != nil {
		s.send(conn, types.WebsocketResponse{
			Type:    types.TypeWebsocketError,
			Payload: err.Error(),
		})
		return
	}

	s.send(conn, types.WebsocketResponse{
		Type:    types.TypeWebsocketSources,
		Payload: sources,
	})
	s.send(conn, types.WebsocketResponse{Type: types.TypeWebsocketDone})
}

func (s *WebSocketService) send(conn *websocket.Conn, resp types.WebsocketResponse) {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(resp); err != nil {
		s.logger.Warn("websocket write error", zap.Error(err))
	}
}
