package orm

import "gorm.io/gorm"

// AutoMigrate creates or updates every table of the journal.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&LedgerTransaction{})
}
