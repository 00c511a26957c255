// Package domain holds the scripted intake flows and their session state.
// A flow is a fixed ordered question list with deterministic
// advance-on-answer logic; the "conversation" is a sequence index, not a
// dialogue model. Typing delays are a presentation concern and are not
// simulated server-side.
package domain

import (
	"sort"
	"strings"
)

// StepKind selects the answer validation applied to a step.
type StepKind string

const (
	StepText   StepKind = "text"
	StepNumber StepKind = "number"
	StepChoice StepKind = "choice"
)

// Step is one scripted question. Prompt is the deterministic hint text; an
// optional rewriter may rephrase it but the flow never depends on that.
type Step struct {
	Key      string
	Prompt   string
	Kind     StepKind
	Required bool
	Options  []string
}

// Flow is a fixed question sequence.
type Flow struct {
	ID    string
	Title string
	Steps []Step
}

var serviceTypeOptions = []string{
	"painting", "flooring", "carpentry", "roofing", "bathroom",
	"kitchen", "extension", "new construction", "full renovation",
}

var timeframeOptions = []string{
	"within 1 week", "within 1 month", "1-3 months", "3-6 months",
	"later than 6 months", "flexible",
}

// flows holds every scripted intake flow, keyed by flow id.
var flows = map[string]Flow{
	"renovation": {
		ID:    "renovation",
		Title: "Renovation intake",
		Steps: []Step{
			{Key: "name", Prompt: "Welcome! What is your name?", Kind: StepText, Required: true},
			{Key: "phone", Prompt: "On what phone number can we reach you?", Kind: StepText, Required: true},
			{Key: "email", Prompt: "What is your email address? (optional)", Kind: StepText},
			{Key: "service_type", Prompt: "What kind of project is it?", Kind: StepChoice, Required: true, Options: serviceTypeOptions},
			{Key: "scope", Prompt: "Describe what you would like to have done.", Kind: StepText, Required: true},
			{Key: "location", Prompt: "In which city or town is the project?", Kind: StepText, Required: true},
			{Key: "timeframe", Prompt: "When would you like the work to start?", Kind: StepChoice, Required: true, Options: timeframeOptions},
			{Key: "budget", Prompt: "What budget do you have in mind, in euros? (optional)", Kind: StepNumber},
			{Key: "electrical", Prompt: "Does the project involve electrical work?", Kind: StepText},
			{Key: "plumbing", Prompt: "Does the project involve plumbing?", Kind: StepText},
			{Key: "floor_heating", Prompt: "Would you like floor heating included?", Kind: StepText},
			{Key: "structural", Prompt: "Are walls being moved or removed, or other structural changes?", Kind: StepText},
			{Key: "start_date", Prompt: "Do you have a preferred start date? (optional)", Kind: StepText},
			{Key: "deadline", Prompt: "Is there a deadline the work must be finished by? (optional)", Kind: StepText},
			{Key: "notes", Prompt: "Anything else we should know about the project? (optional)", Kind: StepText},
		},
	},
	"quick-quote": {
		ID:    "quick-quote",
		Title: "Quick quote request",
		Steps: []Step{
			{Key: "name", Prompt: "What is your name?", Kind: StepText, Required: true},
			{Key: "phone", Prompt: "On what phone number can we reach you?", Kind: StepText, Required: true},
			{Key: "service_type", Prompt: "What kind of project is it?", Kind: StepChoice, Required: true, Options: serviceTypeOptions},
			{Key: "scope", Prompt: "Describe the job in one or two sentences.", Kind: StepText, Required: true},
			{Key: "budget", Prompt: "What budget do you have in mind, in euros? (optional)", Kind: StepNumber},
		},
	},
}

// FlowByID returns a scripted flow by id.
func FlowByID(id string) (Flow, bool) {
	flow, ok := flows[strings.ToLower(strings.TrimSpace(id))]
	return flow, ok
}

// Flows lists the available flows in id order.
func Flows() []Flow {
	all := make([]Flow, 0, len(flows))
	for _, id := range FlowIDs() {
		all = append(all, flows[id])
	}
	return all
}

// FlowIDs lists the available flows.
func FlowIDs() []string {
	ids := make([]string, 0, len(flows))
	for id := range flows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
