package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProjectStatus tracks the negotiation lifecycle of a project.
type ProjectStatus string

const (
	StatusOpen      ProjectStatus = "open"      // accepting bids
	StatusAssigned  ProjectStatus = "assigned"  // freelancer picked, awaiting work
	StatusSubmitted ProjectStatus = "submitted" // deliverable awaiting owner review
	StatusCompleted ProjectStatus = "completed" // submission approved, terminal
)

// Submission review verdicts. Empty string means not reviewed yet.
const (
	SubmissionAccepted = "accepted"
	SubmissionRejected = "rejected"
)

type Project struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"size:200;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Skills      datatypes.JSON `json:"skills"`
	Budget      int            `json:"budget"`
	OwnerID     uint           `json:"owner_id" gorm:"not null;index"`

	// Nil until the owner assigns a bidder; set exactly once.
	FreelancerID *uint         `json:"freelancer_id" gorm:"index"`
	Status       ProjectStatus `json:"status" gorm:"size:20;default:'open';index"`

	ProjectLink           string     `json:"project_link"`
	ManualLink            string     `json:"manual_link"`
	SubmissionDescription string     `json:"submission_description" gorm:"type:text"`
	ArtifactKey           string     `json:"artifact_key,omitempty"`
	SubmittedAt           *time.Time `json:"submitted_at"`

	// "", "accepted" or "rejected". A rejected verdict sticks to the
	// rejected submission; resubmitting clears it.
	SubmissionAccepted string `json:"submission_accepted" gorm:"size:20;default:''"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasSubmission reports whether a deliverable is currently on record.
func (p *Project) HasSubmission() bool {
	return p.SubmittedAt != nil
}

// Assigned reports whether a freelancer has been picked.
func (p *Project) Assigned() bool {
	return p.FreelancerID != nil
}
