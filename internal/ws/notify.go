package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AnalysisCompletedEvent struct {
	Type         string    `json:"type"`
	AnalysisID   uuid.UUID `json:"analysis_id"`
	Kind         string    `json:"kind"`
	OverallScore int       `json:"overall_score"`
	JobTitle     string    `json:"job_title,omitempty"`
	Timestamp    string    `json:"timestamp"`
}

// Notifier adapts a Hub to the analysis service.
type Notifier struct {
	hub *Hub
}

func NewNotifier(h *Hub) *Notifier {
	return &Notifier{hub: h}
}

func (n *Notifier) AnalysisCompleted(id uuid.UUID, kind string, overallScore int, jobTitle string) {
	if n == nil || n.hub == nil {
		return
	}

	evt := AnalysisCompletedEvent{
		Type:         "analysis_completed",
		AnalysisID:   id,
		Kind:         kind,
		OverallScore: overallScore,
		JobTitle:     jobTitle,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
