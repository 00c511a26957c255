package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadEnrich = "leads.enrich"

type LeadEnrichPayload struct {
	LeadID string `json:"leadId"`
}

func NewLeadEnrichTask(payload LeadEnrichPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadEnrich, data), nil
}

func ParseLeadEnrichPayload(task *asynq.Task) (LeadEnrichPayload, error) {
	var payload LeadEnrichPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadEnrichPayload{}, err
	}
	return payload, nil
}
