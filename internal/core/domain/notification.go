package domain

import "time"

// Notification is an in-app message about spend activity. Mutated only via
// explicit mark-read calls; the read flag never changes client-side.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	SpendID   string    `json:"spend_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
