package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillbridge/marketplace-go/dto"
	"github.com/skillbridge/marketplace-go/minio"
	"github.com/skillbridge/marketplace-go/models"
	"github.com/skillbridge/marketplace-go/response"
	"github.com/skillbridge/marketplace-go/services"
)

type ProjectHandler struct {
	svc *services.NegotiationService
}

func NewProjectHandler(svc *services.NegotiationService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// POST /projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var input dto.CreateProjectDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	project, err := h.svc.CreateProject(input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// GET /projects
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.svc.ListProjects()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

type projectView struct {
	models.Project
	ArtifactURL string `json:"artifact_url,omitempty"`
}

// GET /projects/:id
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	project, err := h.svc.GetProject(id)
	if err != nil {
		writeError(c, err)
		return
	}

	view := projectView{Project: project}
	if project.ArtifactKey != "" && minio.Enabled() {
		url, err := minio.PresignDownload(c.Request.Context(), project.ArtifactKey)
		if err != nil {
			log.Printf("presign artifact for project %d: %v", project.ID, err)
		} else {
			view.ArtifactURL = url
		}
	}
	c.JSON(http.StatusOK, view)
}

// POST /projects/:id/submission/upload-url
func (h *ProjectHandler) CreateUploadURL(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input dto.UploadURLRequestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}
	if _, err := h.svc.GetProject(id); err != nil {
		writeError(c, err)
		return
	}
	uploadURL, objectKey, err := minio.PresignUpload(c.Request.Context(), id, input.FileName)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, response.UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey})
}
