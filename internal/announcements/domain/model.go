package domain

import "time"

// Announcement is the single system-wide banner. The admin overwrites it
// wholesale; no history is kept.
type Announcement struct {
	Message   string    `json:"message" firestore:"message"`
	Active    bool      `json:"active" firestore:"active"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
