package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/mverdier/driver-management-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// ActiveDrivers restricts a driver query to currently employed drivers:
// flagged active with no leave date or a leave date after today.
func ActiveDrivers(today time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("actif_p = ?", true).
			Where("date_sortie IS NULL OR date_sortie > ?", today)
	}
}
