package repositories

import (
	"github.com/skillbridge/marketplace-go/db"
	"github.com/skillbridge/marketplace-go/models"
)

type BidRepo interface {
	Create(b *models.Bid) error
	ListByProject(projectID uint) ([]models.Bid, error)
}

type DBBidRepo struct{}

func (r *DBBidRepo) Create(b *models.Bid) error {
	return db.DB.Create(b).Error
}

func (r *DBBidRepo) ListByProject(projectID uint) ([]models.Bid, error) {
	var bids []models.Bid
	err := db.DB.Where("project_id = ?", projectID).Order("created_at asc").Find(&bids).Error
	return bids, err
}
