package models

import (
	"time"

	"gorm.io/gorm"
)

// Driver (conducteur) record. LastName/FirstName hold the canonical
// casing used for lookups; the Display* variants keep the casing
// submitted at creation time.
type Driver struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	ERPID            string         `gorm:"column:erp_id;type:varchar(50);uniqueIndex;not null" json:"erp_id"`
	LastName         string         `gorm:"column:nom;type:varchar(100);not null" json:"nom"`
	FirstName        string         `gorm:"column:prenom;type:varchar(100);not null" json:"prenom"`
	DisplayLastName  string         `gorm:"column:nom_affichage;type:varchar(100)" json:"nom_affichage"`
	DisplayFirstName string         `gorm:"column:prenom_affichage;type:varchar(100)" json:"prenom_affichage"`
	BirthDate        *time.Time     `gorm:"column:date_naissance;type:date" json:"date_naissance"`
	HireDate         time.Time      `gorm:"column:date_entree;type:date;not null" json:"date_entree"`
	LeaveDate        *time.Time     `gorm:"column:date_sortie;type:date" json:"date_sortie"`
	ServiceID        uint64         `gorm:"not null" json:"service_id"`
	SiteID           uint64         `gorm:"not null" json:"site_id"`
	CompanyID        uint64         `gorm:"column:societe_id;not null" json:"societe_id"`
	IsActive         bool           `gorm:"column:actif_p;not null;default:true" json:"actif_p"`
	IsTemp           bool           `gorm:"column:interim_p;not null;default:false" json:"interim_p"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Site    Site    `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	Company Company `gorm:"foreignKey:CompanyID" json:"societe,omitempty"`

	SiteAssignments []SiteHistory `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE" json:"-"`
}

// CurrentlyEmployed reports whether the driver counts as active today:
// flagged active and either no leave date or a leave date in the future.
func (d *Driver) CurrentlyEmployed(today time.Time) bool {
	if !d.IsActive {
		return false
	}
	return d.LeaveDate == nil || d.LeaveDate.After(today)
}
