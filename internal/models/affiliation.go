package models

import "time"

// Company, Service and Site are the affiliation referentials drivers and
// raters are attached to.

type Company struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"column:nom;type:varchar(100);uniqueIndex;not null" json:"nom"`
	CreatedAt time.Time `json:"created_at"`
}

type Service struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"column:nom;type:varchar(100);uniqueIndex;not null" json:"nom"`
	CreatedAt time.Time `json:"created_at"`
}

type Site struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"column:nom;type:varchar(100);not null" json:"nom"`
	PostalCode string    `gorm:"column:code_postal;type:varchar(10)" json:"code_postal"`
	CreatedAt  time.Time `json:"created_at"`
}
