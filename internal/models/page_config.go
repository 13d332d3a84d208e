package models

import "time"

// PageConfig holds routing and navbar configuration for a page. Within a
// page group, display orders are unique.
type PageConfig struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Label        string    `gorm:"type:varchar(200);not null" json:"label"`
	PageGroupID  uint64    `gorm:"not null;uniqueIndex:idx_page_configs_group_order" json:"page_group_id"`
	URLPattern   string    `gorm:"type:varchar(200);not null" json:"url_pattern"`
	TemplateName string    `gorm:"type:varchar(200)" json:"template_name"`
	DisplayOrder int       `gorm:"not null;default:0;uniqueIndex:idx_page_configs_group_order" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	IsDefault    bool      `gorm:"not null;default:false" json:"is_default"`
	ShowInNavbar bool      `gorm:"not null;default:true" json:"show_in_navbar"`
	PageTitle    string    `gorm:"type:varchar(200)" json:"page_title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	PageGroup PageGroup `gorm:"foreignKey:PageGroupID" json:"page_group,omitempty"`
}
