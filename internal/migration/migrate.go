package migration

import (
	"github.com/noracond/noracond-backend/internal/domain"
	"gorm.io/gorm"
)

// Run migrates the application schema
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Client{},
		&domain.Process{},
		&domain.FinancialEntry{},
		&domain.Document{},
		&domain.Message{},
	)
}
