package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	IsSuperuser  bool           `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AuthGroups   []AuthGroup                `gorm:"many2many:user_auth_groups" json:"-"`
	Memberships  []GroupMembership          `gorm:"foreignKey:UserID" json:"-"`
	Associations []UserPageGroupAssociation `gorm:"foreignKey:UserID" json:"-"`
}
