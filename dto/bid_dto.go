package dto

type SubmitBidDTO struct {
	FreelancerID uint   `json:"freelancer_id" binding:"required"`
	Budget       int    `json:"budget" binding:"required"`
	Days         int    `json:"days" binding:"required"`
	Proposal     string `json:"proposal"`
}
