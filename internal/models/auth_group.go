package models

// AuthGroup is an identity-provider style role group, checked by name.
// The fixed group named by constants.GroupManagerGroupName gates all
// custom-group membership mutations and cannot be deleted.
type AuthGroup struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(150);uniqueIndex;not null" json:"name"`

	// Relations
	Users []User `gorm:"many2many:user_auth_groups" json:"users,omitempty"`
}
