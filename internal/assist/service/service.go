// Package service relays conversational requests to an upstream language
// model. The relay is strictly optional plumbing: every caller carries a
// deterministic fallback, so an upstream outage degrades tone, never
// functionality.
package service

import (
	"context"
	"fmt"
	"strings"

	intakesvc "quotedesk_backend/internal/intake/service"
	"quotedesk_backend/platform/logger"
)

const systemPrompt = "You are the friendly intake assistant of a construction and renovation company. " +
	"Answer in the language the customer writes in. Be brief, concrete and polite. " +
	"Never invent prices, dates or commitments."

// RelayParams is one relay request. Hint is the deterministic text the
// caller will use if the relay fails; it is also offered to the model as
// the intended message.
type RelayParams struct {
	Messages []Message
	Context  string
	Hint     string
}

// RelayResult carries the model reply, or the hint as fallback when the
// upstream failed. Err is kept for callers that want to report the cause.
type RelayResult struct {
	Reply    string
	Fallback bool
	Err      error
}

type Service struct {
	client *Client
	log    *logger.Logger
}

func New(client *Client, log *logger.Logger) *Service {
	return &Service{client: client, log: log}
}

// Relay forwards a transcript upstream. It never returns an error: a failed
// relay yields the hint with Fallback set.
func (s *Service) Relay(ctx context.Context, params RelayParams) RelayResult {
	messages := make([]Message, 0, len(params.Messages)+2)
	system := systemPrompt
	if strings.TrimSpace(params.Context) != "" {
		system += "\n\nContext:\n" + params.Context
	}
	messages = append(messages, Message{Role: "system", Content: system})
	messages = append(messages, params.Messages...)
	if strings.TrimSpace(params.Hint) != "" {
		messages = append(messages, Message{
			Role:    "system",
			Content: "Rephrase the following message naturally without changing its meaning: " + params.Hint,
		})
	}

	reply, err := s.client.Complete(ctx, messages)
	if err != nil {
		s.log.AssistFallback("relay", err)
		return RelayResult{Reply: params.Hint, Fallback: true, Err: err}
	}
	return RelayResult{Reply: reply}
}

// RewritePrompt implements the intake prompt rewriter: the scripted hint is
// rephrased conversationally, using the answered steps as context.
func (s *Service) RewritePrompt(ctx context.Context, history []intakesvc.Exchange, hint string) (string, error) {
	messages := make([]Message, 0, len(history)*2+1)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	for _, ex := range history {
		messages = append(messages, Message{Role: "assistant", Content: ex.Prompt})
		messages = append(messages, Message{Role: "user", Content: ex.Answer})
	}
	messages = append(messages, Message{
		Role:    "system",
		Content: "Ask the customer the following question in a natural, conversational way. Keep the meaning identical: " + hint,
	})
	return s.client.Complete(ctx, messages)
}

// PolishSummary rewrites a generated executive summary into flowing prose.
// Facts must survive verbatim; the upstream is told so.
func (s *Service) PolishSummary(ctx context.Context, draft string) (string, error) {
	messages := []Message{
		{Role: "system", Content: "You polish project summaries for a construction company. " +
			"Rewrite the draft into clear professional prose. Keep every fact, figure and caveat. " +
			"Do not add information."},
		{Role: "user", Content: fmt.Sprintf("Draft:\n%s", draft)},
	}
	return s.client.Complete(ctx, messages)
}

// Compile-time check that the service satisfies the intake rewriter.
var _ intakesvc.PromptRewriter = (*Service)(nil)
