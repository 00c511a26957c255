// Package handler exposes the intake flow over HTTP.
package handler

import (
	"net/http"

	"quotedesk_backend/internal/intake/domain"
	"quotedesk_backend/internal/intake/service"
	"quotedesk_backend/internal/intake/transport"
	"quotedesk_backend/platform/httpkit"
	"quotedesk_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/flows", h.ListFlows)
	rg.POST("/sessions", h.StartSession)
	rg.GET("/sessions/:id", h.GetSession)
	rg.POST("/sessions/:id/answers", h.SubmitAnswer)
	rg.POST("/sessions/:id/attachments", h.AddAttachment)
}

func (h *Handler) ListFlows(c *gin.Context) {
	httpkit.OK(c, transport.ToFlowListResponse(domain.Flows()))
}

func (h *Handler) StartSession(c *gin.Context) {
	var req transport.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	sess, prompt, err := h.svc.Start(c.Request.Context(), req.Flow)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, transport.ToSessionResponse(sess, prompt, nil))
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	sess, prompt, err := h.svc.Current(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToSessionResponse(sess, prompt, nil))
}

func (h *Handler) SubmitAnswer(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), id, req.Answer)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToSessionResponse(result.Session, result.Next, result.Lead))
}

func (h *Handler) AddAttachment(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req transport.AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	sess, err := h.svc.AddAttachment(c.Request.Context(), id, req.Name, req.URL)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ToSessionResponse(sess, nil, nil))
}

func (h *Handler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid session id", nil)
		return uuid.Nil, false
	}
	return id, true
}
