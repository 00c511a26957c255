// Package transport defines the intake wire types.
package transport

import (
	"time"

	"quotedesk_backend/internal/intake/domain"
	"quotedesk_backend/internal/intake/service"
	leaddomain "quotedesk_backend/internal/leads/domain"
	leadtransport "quotedesk_backend/internal/leads/transport"
)

type StartSessionRequest struct {
	Flow string `json:"flow" validate:"required"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

type AddAttachmentRequest struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url" validate:"required,url"`
}

type FlowResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	TotalSteps int    `json:"totalSteps"`
}

type FlowListResponse struct {
	Items []FlowResponse `json:"items"`
}

type AttachmentResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type SessionResponse struct {
	ID          string                      `json:"id"`
	Flow        string                      `json:"flow"`
	StepIndex   int                         `json:"stepIndex"`
	Answers     map[string]string           `json:"answers"`
	Attachments []AttachmentResponse        `json:"attachments"`
	Completed   bool                        `json:"completed"`
	LeadID      string                      `json:"leadId,omitempty"`
	Prompt      *service.Prompt             `json:"prompt,omitempty"`
	Lead        *leadtransport.LeadResponse `json:"lead,omitempty"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

func ToFlowListResponse(flows []domain.Flow) FlowListResponse {
	items := make([]FlowResponse, 0, len(flows))
	for _, f := range flows {
		items = append(items, FlowResponse{ID: f.ID, Title: f.Title, TotalSteps: len(f.Steps)})
	}
	return FlowListResponse{Items: items}
}

func ToSessionResponse(sess *domain.Session, prompt *service.Prompt, lead *leaddomain.Lead) SessionResponse {
	attachments := make([]AttachmentResponse, 0, len(sess.Attachments))
	for _, a := range sess.Attachments {
		attachments = append(attachments, AttachmentResponse{Name: a.Name, URL: a.URL})
	}

	resp := SessionResponse{
		ID:          sess.ID.String(),
		Flow:        sess.FlowID,
		StepIndex:   sess.StepIndex,
		Answers:     sess.Answers,
		Attachments: attachments,
		Completed:   sess.Completed,
		Prompt:      prompt,
		CreatedAt:   sess.CreatedAt,
		UpdatedAt:   sess.UpdatedAt,
	}
	if sess.Completed {
		resp.LeadID = sess.LeadID.String()
	}
	if lead != nil {
		lr := leadtransport.ToLeadResponse(*lead)
		resp.Lead = &lr
	}
	return resp
}
