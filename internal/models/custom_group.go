package models

import "time"

type CustomGroup struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedByID uint64    `gorm:"not null" json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	CreatedBy User              `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Members   []GroupMembership `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}
