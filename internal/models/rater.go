package models

import (
	"time"

	"gorm.io/gorm"
)

// Rater (notateur) record.
type Rater struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	LastName         string         `gorm:"column:nom;type:varchar(100);not null" json:"nom"`
	FirstName        string         `gorm:"column:prenom;type:varchar(100);not null" json:"prenom"`
	DisplayLastName  string         `gorm:"column:nom_affichage;type:varchar(100)" json:"nom_affichage"`
	DisplayFirstName string         `gorm:"column:prenom_affichage;type:varchar(100)" json:"prenom_affichage"`
	HireDate         *time.Time     `gorm:"column:date_entree;type:date" json:"date_entree"`
	LeaveDate        *time.Time     `gorm:"column:date_sortie;type:date" json:"date_sortie"`
	ServiceID        uint64         `gorm:"not null" json:"service_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// CurrentlyActive reports whether the rater may still rate: no leave
// date, or a leave date strictly in the future.
func (r *Rater) CurrentlyActive(today time.Time) bool {
	return r.LeaveDate == nil || r.LeaveDate.After(today)
}
