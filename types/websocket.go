package types

const (
	TypeWebsocketPing   = "ping"
	TypeWebsocketPong   = "pong"
	TypeWebsocketChat   = "chat"
	TypeWebsocketAnswer = "answer"
	TypeWebsocketError  = "error"
)

// WebsocketRequest is one client frame on the chat socket.
type WebsocketRequest struct {
	Type    string `json:"type"`
	Payload string `json:"payload,omitempty"`
}

// WebsocketResponse is one server frame on the chat socket.
type WebsocketResponse struct {
	Type    string `json:"type"`
	Payload string `json:"payload,omitempty"`
}
