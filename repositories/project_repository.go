package repositories

import (
	"github.com/skillbridge/marketplace-go/db"
	"github.com/skillbridge/marketplace-go/models"
)

type ProjectRepo interface {
	Create(p *models.Project) error
	GetByID(id uint) (models.Project, error)
	Save(p *models.Project) error
	List() ([]models.Project, error)
}

type DBProjectRepo struct{}

func (r *DBProjectRepo) Create(p *models.Project) error {
	return db.DB.Create(p).Error
}

func (r *DBProjectRepo) GetByID(id uint) (models.Project, error) {
	var project models.Project
	err := db.DB.First(&project, id).Error
	return project, err
}

func (r *DBProjectRepo) Save(p *models.Project) error {
	return db.DB.Save(p).Error
}

func (r *DBProjectRepo) List() ([]models.Project, error) {
	var projects []models.Project
	err := db.DB.Order("created_at desc").Find(&projects).Error
	return projects, err
}
