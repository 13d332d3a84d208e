package models

// PageGroup is a navigation category in the navbar.
type PageGroup struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Name         string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Label        string `gorm:"type:varchar(100);not null" json:"label"`
	Description  string `gorm:"type:text" json:"description"`
	DisplayOrder int    `gorm:"column:display_order;not null;default:0" json:"display_order"`

	// Relations
	Pages []Page `gorm:"foreignKey:PageGroupID;constraint:OnDelete:CASCADE" json:"pages,omitempty"`
}
