package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type AnalysisResponse struct {
	AnalysisID uuid.UUID       `json:"analysis_id"`
	Source     string          `json:"source"`
	CreatedAt  string          `json:"created_at"`
	Result     json.RawMessage `json:"result"`
}
