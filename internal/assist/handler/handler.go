// Package handler exposes the assist relay over HTTP.
package handler

import (
	"net/http"

	"quotedesk_backend/internal/assist/service"
	"quotedesk_backend/internal/assist/transport"
	"quotedesk_backend/platform/httpkit"
	"quotedesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.Chat)
}

// Chat relays a transcript upstream. The response is always 200: a reply
// on success, or an error plus the hint in fallback, so clients never
// need an error path of their own.
func (h *Handler) Chat(c *gin.Context) {
	var req transport.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result := h.svc.Relay(c.Request.Context(), service.RelayParams{
		Messages: transport.ToMessages(req.Messages),
		Context:  req.Context,
		Hint:     req.Hint,
	})

	httpkit.OK(c, transport.ToChatResponse(result))
}
