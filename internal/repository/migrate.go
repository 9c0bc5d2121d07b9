package repository

import "gorm.io/gorm"

// AutoMigrate creates all tables plus the partial unique index that keeps a
// tenant from holding two open requests for one property. AutoMigrate alone
// cannot express partial indexes, so the index is raw SQL; the syntax works
// on both PostgreSQL and SQLite.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&propertyModel{},
		&requestModel{},
		&conversationModel{},
		&messageModel{},
	); err != nil {
		return err
	}

	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_pending_request
		 ON booking_requests (tenant_id, property_id)
		 WHERE status = 'PENDING'`,
	).Error
}
