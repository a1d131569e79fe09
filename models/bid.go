package models

import "time"

// Bid is immutable once created. A freelancer may bid on the same
// project more than once; each bid is a separate record.
type Bid struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProjectID    uint      `json:"project_id" gorm:"not null;index"`
	FreelancerID uint      `json:"freelancer_id" gorm:"not null;index"`
	Budget       int       `json:"budget"`
	Days         int       `json:"days"`
	Proposal     string    `json:"proposal" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}
