package models

import "time"

// UserPageGroupAssociation grants a user visibility into a page group's
// active pages. Unique per (user, page_group) pair; resolution order is
// the insertion order of the rows.
type UserPageGroupAssociation struct {
	UserID      uint64    `gorm:"primarykey" json:"user_id"`
	PageGroupID uint64    `gorm:"primarykey" json:"page_group_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PageGroup PageGroup `gorm:"foreignKey:PageGroupID" json:"page_group,omitempty"`
}
