package models

type Page struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Name         string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Label        string `gorm:"type:varchar(255);not null" json:"label"`
	URLName      string `gorm:"type:varchar(100);not null" json:"url_name"`
	PageGroupID  uint64 `gorm:"not null" json:"page_group_id"`
	DisplayOrder int    `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`

	// Relations
	PageGroup PageGroup `gorm:"foreignKey:PageGroupID" json:"page_group,omitempty"`
}
