package models

import "time"

type RatingCriterion struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"column:nom;type:varchar(100);not null" json:"nom"`
	Description string    `gorm:"type:text" json:"description"`
	MinValue    int       `gorm:"column:valeur_mini;not null" json:"valeur_mini"`
	MaxValue    int       `gorm:"column:valeur_maxi;not null" json:"valeur_maxi"`
	IsActive    bool      `gorm:"column:actif;not null;default:true" json:"actif"`
	CreatedAt   time.Time `json:"created_at"`
}

// Rating (notation) of one driver on one criterion by one rater on one
// date. Value is nullable so that the first real assignment is recorded
// in the audit trail as null -> value.
type Rating struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	RatedAt     time.Time `gorm:"column:date_notation;type:date;not null;uniqueIndex:idx_ratings_unique" json:"date_notation"`
	RaterID     uint64    `gorm:"not null;uniqueIndex:idx_ratings_unique" json:"rater_id"`
	DriverID    uint64    `gorm:"not null;uniqueIndex:idx_ratings_unique" json:"driver_id"`
	CriterionID uint64    `gorm:"not null;uniqueIndex:idx_ratings_unique" json:"criterion_id"`
	Value       *int      `gorm:"column:valeur" json:"valeur"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Rater     Rater           `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	Driver    Driver          `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Criterion RatingCriterion `gorm:"foreignKey:CriterionID" json:"criterion,omitempty"`

	History []RatingHistory `gorm:"foreignKey:RatingID;constraint:OnDelete:CASCADE" json:"-"`
}

// RatingHistory is the append-only audit trail of rating value changes.
// No code path updates or deletes a row once written.
type RatingHistory struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	RatingID  uint64    `gorm:"not null;index" json:"rating_id"`
	OldValue  *int      `gorm:"column:ancienne_valeur" json:"ancienne_valeur"`
	NewValue  int       `gorm:"column:nouvelle_valeur;not null" json:"nouvelle_valeur"`
	ChangedAt time.Time `gorm:"column:date_changement;not null" json:"date_changement"`

	// Relations
	Rating Rating `gorm:"foreignKey:RatingID" json:"-"`
}
