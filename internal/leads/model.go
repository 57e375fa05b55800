package leads

import "time"

// Lead is a marketing-site contact form submission.
type Lead struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name,omitempty"`
	Company     string     `json:"company,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Message     string     `json:"message,omitempty"`
	Source      string     `json:"source,omitempty"`
	CRMSyncedAt *time.Time `json:"crmSyncedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
