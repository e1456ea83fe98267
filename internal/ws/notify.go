package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

type AnalysisCompletedEvent struct {
	Type       string `json:"type"`
	AnalysisID string `json:"analysis_id"`
	UserID     string `json:"user_id"`
	Score      int    `json:"score"`
	Confidence string `json:"confidence"`
	Timestamp  string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyAnalysisCompleted broadcasts a finished analysis to every connected
// client. Best effort: a missing hub or full buffer drops the event.
func NotifyAnalysisCompleted(analysisID, userID string, score int, confidence string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	evt := AnalysisCompletedEvent{
		Type:       "analysis_completed",
		AnalysisID: analysisID,
		UserID:     userID,
		Score:      score,
		Confidence: confidence,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
