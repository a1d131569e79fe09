package models

import "time"

// Message is an append-only chat record. Position is assigned by the
// store and is the authoritative order within a project's room; the
// timestamp is server clock and used for display only.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"not null;uniqueIndex:idx_project_position"`
	SenderID  uint      `json:"sender_id" gorm:"not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Position  int64     `json:"position" gorm:"not null;uniqueIndex:idx_project_position"`
	CreatedAt time.Time `json:"created_at"`
}
