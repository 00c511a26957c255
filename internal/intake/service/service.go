// Package service drives the scripted intake flows: it owns the live
// sessions, validates answers against the script, and hands completed
// answer sets to the leads service.
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"quotedesk_backend/internal/intake/domain"
	leaddomain "quotedesk_backend/internal/leads/domain"
	leadsvc "quotedesk_backend/internal/leads/service"
	"quotedesk_backend/platform/apperr"
	"quotedesk_backend/platform/logger"
)

// PromptRewriter rephrases the next scripted prompt in a conversational
// tone. It is a decoration only: any error or empty result falls back to
// the deterministic script text.
type PromptRewriter interface {
	RewritePrompt(ctx context.Context, history []Exchange, hint string) (string, error)
}

// Exchange is one answered step, passed to the rewriter as context.
type Exchange struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// Prompt is what the client renders next.
type Prompt struct {
	Key        string          `json:"key"`
	Text       string          `json:"text"`
	Kind       domain.StepKind `json:"kind"`
	Required   bool            `json:"required"`
	Options    []string        `json:"options,omitempty"`
	StepIndex  int             `json:"stepIndex"`
	TotalSteps int             `json:"totalSteps"`
}

// Result is the outcome of a submitted answer.
type Result struct {
	Session *domain.Session
	Next    *Prompt
	Lead    *leaddomain.Lead
}

type Service struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session
	leads    *leadsvc.Service
	rewriter PromptRewriter
	log      *logger.Logger
}

func New(leads *leadsvc.Service, log *logger.Logger) *Service {
	return &Service{
		sessions: make(map[uuid.UUID]*domain.Session),
		leads:    leads,
		log:      log,
	}
}

// SetPromptRewriter installs an optional rewriter. Without one every prompt
// is the script text verbatim.
func (s *Service) SetPromptRewriter(r PromptRewriter) {
	s.rewriter = r
}

// Start opens a session for the given flow and returns the first prompt.
func (s *Service) Start(ctx context.Context, flowID string) (*domain.Session, *Prompt, error) {
	flow, ok := domain.FlowByID(flowID)
	if !ok {
		return nil, nil, apperr.Validation(fmt.Sprintf("unknown intake flow %q, available: %s", flowID, strings.Join(domain.FlowIDs(), ", ")))
	}

	sess := domain.NewSession(flow.ID)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	snap := snapshotPrompt(sess, flow)
	s.mu.Unlock()

	return sess, s.prompt(ctx, snap), nil
}

// Current returns the session and its pending prompt. A completed session
// returns a nil prompt.
func (s *Service) Current(ctx context.Context, sessionID uuid.UUID) (*domain.Session, *Prompt, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, nil, apperr.NotFound("intake session not found")
	}
	if sess.Completed {
		s.mu.Unlock()
		return sess, nil, nil
	}
	flow, _ := domain.FlowByID(sess.FlowID)
	snap := snapshotPrompt(sess, flow)
	s.mu.Unlock()

	return sess, s.prompt(ctx, snap), nil
}

// Submit records an answer for the pending step. Invalid answers do not
// advance the flow; the caller corrects and resubmits. When the last step
// is answered the session completes and a lead is created from the
// collected answers.
func (s *Service) Submit(ctx context.Context, sessionID uuid.UUID, answer string) (Result, error) {
	s.mu.Lock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return Result{}, apperr.NotFound("intake session not found")
	}
	if sess.Completed {
		s.mu.Unlock()
		return Result{}, apperr.Conflict("intake session is already completed")
	}

	flow, _ := domain.FlowByID(sess.FlowID)
	step := flow.Steps[sess.StepIndex]

	value, err := validateAnswer(step, answer)
	if err != nil {
		s.mu.Unlock()
		return Result{}, err
	}

	sess.Answers[step.Key] = value
	sess.StepIndex++
	sess.UpdatedAt = time.Now().UTC()

	if sess.StepIndex < len(flow.Steps) {
		// The rewriter may call out over the network; release the lock
		// first so one slow rewrite does not stall other sessions.
		snap := snapshotPrompt(sess, flow)
		s.mu.Unlock()
		return Result{Session: sess, Next: s.prompt(ctx, snap)}, nil
	}

	lead, err := s.complete(ctx, sess)
	if err != nil {
		// Leave the session open on the last step so the caller can retry.
		sess.StepIndex = len(flow.Steps) - 1
		delete(sess.Answers, step.Key)
		s.mu.Unlock()
		return Result{}, err
	}

	sess.Completed = true
	sess.LeadID = lead.ID
	s.mu.Unlock()
	return Result{Session: sess, Lead: &lead}, nil
}

// AddAttachment records a file reference on the session. Only the reference
// is kept; file content never passes through the intake flow.
func (s *Service) AddAttachment(ctx context.Context, sessionID uuid.UUID, name, url string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperr.NotFound("intake session not found")
	}
	if sess.Completed {
		return nil, apperr.Conflict("intake session is already completed")
	}
	sess.Attachments = append(sess.Attachments, leaddomain.Attachment{Name: name, URL: url})
	sess.UpdatedAt = time.Now().UTC()
	return sess, nil
}

func (s *Service) complete(ctx context.Context, sess *domain.Session) (leaddomain.Lead, error) {
	answers := make(map[string]string, len(sess.Answers))
	for k, v := range sess.Answers {
		answers[k] = v
	}

	cost, err := ParseAmount(answers["budget"])
	if err != nil {
		return leaddomain.Lead{}, apperr.Validation("budget could not be read as an amount")
	}

	return s.leads.CreateFromIntake(ctx, leadsvc.CreateLeadParams{
		Customer: leaddomain.Customer{
			Name:  answers["name"],
			Phone: answers["phone"],
			Email: answers["email"],
		},
		ServiceType:   answers["service_type"],
		Scope:         answers["scope"],
		Location:      answers["location"],
		Timeframe:     answers["timeframe"],
		Notes:         answers["notes"],
		Attachments:   sess.Attachments,
		Answers:       answers,
		EstimatedCost: cost,
	})
}

// promptSnapshot copies everything the next prompt needs out of the
// session, so the rewriter call can run without the session lock.
type promptSnapshot struct {
	step       domain.Step
	history    []Exchange
	stepIndex  int
	totalSteps int
}

func snapshotPrompt(sess *domain.Session, flow domain.Flow) promptSnapshot {
	history := make([]Exchange, 0, sess.StepIndex)
	for i := 0; i < sess.StepIndex && i < len(flow.Steps); i++ {
		step := flow.Steps[i]
		history = append(history, Exchange{Prompt: step.Prompt, Answer: sess.Answers[step.Key]})
	}
	return promptSnapshot{
		step:       flow.Steps[sess.StepIndex],
		history:    history,
		stepIndex:  sess.StepIndex,
		totalSteps: len(flow.Steps),
	}
}

// prompt builds the next prompt, consulting the rewriter when one is set.
// Called without the session lock held.
func (s *Service) prompt(ctx context.Context, snap promptSnapshot) *Prompt {
	text := snap.step.Prompt

	if s.rewriter != nil {
		if out, err := s.rewriter.RewritePrompt(ctx, snap.history, snap.step.Prompt); err != nil {
			s.log.AssistFallback("prompt rewrite", err)
		} else if strings.TrimSpace(out) != "" {
			text = out
		}
	}

	return &Prompt{
		Key:        snap.step.Key,
		Text:       text,
		Kind:       snap.step.Kind,
		Required:   snap.step.Required,
		Options:    snap.step.Options,
		StepIndex:  snap.stepIndex,
		TotalSteps: snap.totalSteps,
	}
}

func validateAnswer(step domain.Step, answer string) (string, error) {
	value := strings.TrimSpace(answer)

	if value == "" {
		if step.Required {
			return "", apperr.Validation(fmt.Sprintf("an answer for %q is required", step.Key))
		}
		return "", nil
	}

	switch step.Kind {
	case domain.StepChoice:
		for _, opt := range step.Options {
			if strings.EqualFold(opt, value) {
				return opt, nil
			}
		}
		return "", apperr.Validation(fmt.Sprintf("answer for %q must be one of: %s", step.Key, strings.Join(step.Options, ", ")))
	case domain.StepNumber:
		if _, err := ParseAmount(value); err != nil {
			return "", apperr.Validation(fmt.Sprintf("answer for %q must be an amount", step.Key))
		}
	}
	return value, nil
}

// ParseAmount reads a user-typed euro amount. Currency signs, spaces and
// thousand separators are tolerated; "180.000" and "180,000" both read as
// 180000 while "1500.50" keeps its decimal part.
func ParseAmount(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, nil
	}
	cleaned = strings.NewReplacer("€", "", "eur", "", "EUR", "", " ", "").Replace(cleaned)

	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		if len(cleaned)-lastComma-1 == 3 {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		}
	case lastDot >= 0:
		if len(cleaned)-lastDot-1 == 3 {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if amount < 0 {
		return 0, fmt.Errorf("negative amount")
	}
	return amount, nil
}
