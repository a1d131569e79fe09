package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/skillbridge/marketplace-go/dto"
	"github.com/skillbridge/marketplace-go/models"
	"github.com/skillbridge/marketplace-go/repositories"
	"gorm.io/gorm"
)

// NegotiationService owns the project lifecycle state machine:
//
//	open -> assigned -> submitted -> completed
//	                 ^------------/  (reject)
//
// A rejected submission returns the project to assigned so the same
// freelancer can resubmit; approval is terminal. Transitions for one
// project are serialized on a per-project mutex, so two concurrent
// assigns on an open project yield exactly one winner.
type NegotiationService struct {
	Repos *repositories.Repos
	locks keyedMutex
}

func NewNegotiationService(repos *repositories.Repos) *NegotiationService {
	return &NegotiationService{Repos: repos}
}

func (s *NegotiationService) CreateProject(input dto.CreateProjectDTO) (models.Project, error) {
	skills, err := json.Marshal(input.Skills)
	if err != nil {
		return models.Project{}, storageError("encode skills", err)
	}
	project := models.Project{
		Title:       input.Title,
		Description: input.Description,
		Skills:      skills,
		Budget:      input.Budget,
		OwnerID:     input.OwnerID,
		Status:      models.StatusOpen,
	}
	if err := s.Repos.Project.Create(&project); err != nil {
		return models.Project{}, storageError("create project", err)
	}
	return project, nil
}

func (s *NegotiationService) GetProject(id uint) (models.Project, error) {
	return s.load(id)
}

func (s *NegotiationService) ListProjects() ([]models.Project, error) {
	projects, err := s.Repos.Project.List()
	if err != nil {
		return nil, storageError("list projects", err)
	}
	return projects, nil
}

// SubmitBid records a bid on an open project. It never mutates the
// project itself; picking a winner is a separate Assign call.
func (s *NegotiationService) SubmitBid(projectID uint, input dto.SubmitBidDTO) (models.Bid, error) {
	unlock := s.locks.Lock(projectID)
	defer unlock()

	project, err := s.load(projectID)
	if err != nil {
		return models.Bid{}, err
	}
	if project.Status != models.StatusOpen {
		return models.Bid{}, ErrInvalidTransition
	}

	bid := models.Bid{
		ProjectID:    projectID,
		FreelancerID: input.FreelancerID,
		Budget:       input.Budget,
		Days:         input.Days,
		Proposal:     input.Proposal,
	}
	if err := s.Repos.Bid.Create(&bid); err != nil {
		return models.Bid{}, storageError("create bid", err)
	}
	return bid, nil
}

func (s *NegotiationService) ListBids(projectID uint) ([]models.Bid, error) {
	if _, err := s.load(projectID); err != nil {
		return nil, err
	}
	bids, err := s.Repos.Bid.ListByProject(projectID)
	if err != nil {
		return nil, storageError("list bids", err)
	}
	return bids, nil
}

// Assign picks the winning freelancer. Valid only while the project is
// open with no freelancer set; the freelancer reference is written
// exactly once.
func (s *NegotiationService) Assign(projectID, freelancerID uint) (models.Project, error) {
	unlock := s.locks.Lock(projectID)
	defer unlock()

	project, err := s.load(projectID)
	if err != nil {
		return models.Project{}, err
	}
	if project.Status != models.StatusOpen || project.Assigned() {
		return models.Project{}, ErrInvalidTransition
	}

	project.FreelancerID = &freelancerID
	project.Status = models.StatusAssigned
	if err := s.Repos.Project.Save(&project); err != nil {
		return models.Project{}, storageError("save project", err)
	}
	return project, nil
}

// SubmitWork attaches a deliverable. Valid only from assigned; a prior
// rejection verdict is cleared because it belonged to the replaced
// submission.
func (s *NegotiationService) SubmitWork(projectID uint, input dto.SubmitWorkDTO) (models.Project, error) {
	unlock := s.locks.Lock(projectID)
	defer unlock()

	project, err := s.load(projectID)
	if err != nil {
		return models.Project{}, err
	}
	if project.Status != models.StatusAssigned || !project.Assigned() {
		return models.Project{}, ErrInvalidTransition
	}

	now := time.Now()
	project.ProjectLink = input.ProjectLink
	project.ManualLink = input.ManualLink
	project.SubmissionDescription = input.Description
	project.ArtifactKey = input.ArtifactKey
	project.SubmittedAt = &now
	project.SubmissionAccepted = ""
	project.Status = models.StatusSubmitted
	if err := s.Repos.Project.Save(&project); err != nil {
		return models.Project{}, storageError("save project", err)
	}
	return project, nil
}

// Approve accepts the pending submission. Terminal: no transition
// leaves completed.
func (s *NegotiationService) Approve(projectID uint) (models.Project, error) {
	unlock := s.locks.Lock(projectID)
	defer unlock()

	project, err := s.load(projectID)
	if err != nil {
		return models.Project{}, err
	}
	if project.Status != models.StatusSubmitted {
		return models.Project{}, ErrInvalidTransition
	}

	project.SubmissionAccepted = models.SubmissionAccepted
	project.Status = models.StatusCompleted
	if err := s.Repos.Project.Save(&project); err != nil {
		return models.Project{}, storageError("save project", err)
	}
	return project, nil
}

// Reject turns down the pending submission and reopens the project to
// assigned so the freelancer may rework and resubmit.
func (s *NegotiationService) Reject(projectID uint) (models.Project, error) {
	unlock := s.locks.Lock(projectID)
	defer unlock()

	project, err := s.load(projectID)
	if err != nil {
		return models.Project{}, err
	}
	if project.Status != models.StatusSubmitted {
		return models.Project{}, ErrInvalidTransition
	}

	project.SubmissionAccepted = models.SubmissionRejected
	project.Status = models.StatusAssigned
	if err := s.Repos.Project.Save(&project); err != nil {
		return models.Project{}, storageError("save project", err)
	}
	return project, nil
}

func (s *NegotiationService) load(id uint) (models.Project, error) {
	project, err := s.Repos.Project.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Project{}, ErrProjectNotFound
		}
		return models.Project{}, storageError("load project", err)
	}
	return project, nil
}
