package dto

type CreateProjectDTO struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Budget      int      `json:"budget"`
	OwnerID     uint     `json:"owner_id" binding:"required"`
}

type AssignDTO struct {
	FreelancerID uint `json:"freelancer_id" binding:"required"`
}

type SubmitWorkDTO struct {
	ProjectLink string `json:"project_link" binding:"required"`
	ManualLink  string `json:"manual_link"`
	Description string `json:"description"`
	// Object key returned by the upload-url endpoint, if the
	// freelancer uploaded an archive alongside the links.
	ArtifactKey string `json:"artifact_key"`
}

type UploadURLRequestDTO struct {
	FileName string `json:"file_name" binding:"required"`
}
