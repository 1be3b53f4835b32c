package repositories

import "gorm.io/gorm"

// conn picks the caller's transaction when one is given so reads and writes
// inside a unit of work share the same connection.
func conn(fallback, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return fallback
}
