package appeals

import "time"

// Letter types.
const (
	TypeAIGenerated = "ai-generated"
	TypeTemplate    = "template"
)

// Letter is a generated appeal letter.
type Letter struct {
	ID          string    `json:"id,omitempty"`
	ClaimID     string    `json:"claimId,omitempty"`
	Letter      string    `json:"letter"`
	Type        string    `json:"type"`
	Model       string    `json:"model,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// DenialInfo carries the payer's stated denial details used in the letter.
type DenialInfo struct {
	Reason string
	Code   string
	Date   *time.Time
}
