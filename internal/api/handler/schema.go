package handler

import "github.com/bucketchat/api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type credentialsRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// postMessageRequest deliberately has no sender field: the sender is taken
// from the verified token.
type postMessageRequest struct {
	Message string `json:"message" form:"message" validate:"required"`
}

// messageResponse mirrors the stored record; createdAt is epoch milliseconds.
type messageResponse struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	CreatedAt int64  `json:"createdAt"`
	Message   string `json:"message"`
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		Sender:    m.Sender,
		CreatedAt: m.CreatedAt.UnixMilli(),
		Message:   m.Text,
	}
}

func toMessageListResponse(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, len(msgs))
	for i, m := range msgs {
		out[i] = toMessageResponse(m)
	}
	return out
}
