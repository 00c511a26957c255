// Package transport defines the assist wire types.
package transport

import "quotedesk_backend/internal/assist/service"

type MessageRequest struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Messages []MessageRequest `json:"messages" validate:"omitempty,dive"`
	Context  string           `json:"context"`
	Hint     string           `json:"hint" validate:"required"`
}

// ChatResponse is either a reply or, on upstream failure, an error plus
// the original hint in fallback so the client can continue the script.
type ChatResponse struct {
	Reply    string `json:"reply,omitempty"`
	Fallback string `json:"fallback,omitempty"`
	Error    string `json:"error,omitempty"`
}

func ToMessages(reqs []MessageRequest) []service.Message {
	messages := make([]service.Message, 0, len(reqs))
	for _, m := range reqs {
		messages = append(messages, service.Message{Role: m.Role, Content: m.Content})
	}
	return messages
}

func ToChatResponse(result service.RelayResult) ChatResponse {
	if result.Err != nil {
		return ChatResponse{Fallback: result.Reply, Error: "assist temporarily unavailable"}
	}
	return ChatResponse{Reply: result.Reply}
}
