package models

import "time"

// SiteHistory records one interval of a driver's assignment to a site.
// The open interval (EndDate nil) is closed when the driver changes site.
type SiteHistory struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	DriverID  uint64     `gorm:"not null;index" json:"driver_id"`
	SiteID    uint64     `gorm:"not null" json:"site_id"`
	StartDate time.Time  `gorm:"column:date_entree;type:date;not null" json:"date_entree"`
	EndDate   *time.Time `gorm:"column:date_sortie;type:date" json:"date_sortie"`

	// Relations
	Driver Driver `gorm:"foreignKey:DriverID" json:"-"`
	Site   Site   `gorm:"foreignKey:SiteID" json:"site,omitempty"`
}
