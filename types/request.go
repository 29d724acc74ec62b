package types

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AskRequest struct {
	Question   string `json:"question"`
	DocumentID string `json:"documentId,omitempty"`
}

type WebsocketRequest struct {
	Type    string     `json:"type"`
	Payload AskRequest `json:"payload"`
}
