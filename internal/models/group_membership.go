package models

import "time"

// GroupMembership links a user to a custom group. The composite primary
// key guarantees at most one row per (group, user) pair. AddedBy nulls
// out when the adding user is later removed.
type GroupMembership struct {
	GroupID   uint64    `gorm:"primarykey" json:"group_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	AddedAt   time.Time `json:"added_at"`
	AddedByID *uint64   `gorm:"constraint:OnDelete:SET NULL" json:"added_by_id"`

	// Relations
	Group   CustomGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	User    User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AddedBy *User       `gorm:"foreignKey:AddedByID" json:"added_by,omitempty"`
}
