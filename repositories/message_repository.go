package repositories

import (
	"github.com/skillbridge/marketplace-go/db"
	"github.com/skillbridge/marketplace-go/models"
	"gorm.io/gorm"
)

type MessageRepo interface {
	// Append persists a message and assigns it the next position in
	// the project's room. The position, not the timestamp, is the
	// authoritative order.
	Append(projectID, senderID uint, text string) (models.Message, error)
	// History returns every message for the project, oldest first, in
	// exact append order.
	History(projectID uint) ([]models.Message, error)
}

type DBMessageRepo struct{}

func (r *DBMessageRepo) Append(projectID, senderID uint, text string) (models.Message, error) {
	var msg models.Message
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// Advisory lock keyed by project serializes appends on one
		// room across all connections; the unique (project_id,
		// position) index is the backstop.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(projectID)).Error; err != nil {
			return err
		}

		var last int64
		if err := tx.Raw(
			"SELECT COALESCE(MAX(position), 0) FROM messages WHERE project_id = ?",
			projectID,
		).Scan(&last).Error; err != nil {
			return err
		}

		msg = models.Message{
			ProjectID: projectID,
			SenderID:  senderID,
			Text:      text,
			Position:  last + 1,
		}
		return tx.Create(&msg).Error
	})
	return msg, err
}

func (r *DBMessageRepo) History(projectID uint) ([]models.Message, error) {
	var messages []models.Message
	err := db.DB.Where("project_id = ?", projectID).Order("position asc").Find(&messages).Error
	return messages, err
}
