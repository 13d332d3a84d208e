package repository

import (
	"time"

	"github.com/mverdier/driver-management-api/internal/models"
	"gorm.io/gorm"
)

// GormRaterRepository is a GORM implementation of RaterRepository
type GormRaterRepository struct {
	db *gorm.DB
}

// NewRaterRepository creates a new RaterRepository
func NewRaterRepository(db *gorm.DB) RaterRepository {
	return &GormRaterRepository{db: db}
}

func (r *GormRaterRepository) Create(rater *models.Rater) error {
	return r.db.Create(rater).Error
}

func (r *GormRaterRepository) Update(rater *models.Rater) error {
	return r.db.Save(rater).Error
}

func (r *GormRaterRepository) FindByID(id uint64) (*models.Rater, error) {
	var rater models.Rater
	if err := r.db.Preload("Service").First(&rater, id).Error; err != nil {
		return nil, err
	}
	return &rater, nil
}

func (r *GormRaterRepository) List() ([]models.Rater, error) {
	var raters []models.Rater
	if err := r.db.Preload("Service").Order("nom, prenom").Find(&raters).Error; err != nil {
		return nil, err
	}
	return raters, nil
}

// GormCriterionRepository is a GORM implementation of CriterionRepository
type GormCriterionRepository struct {
	db *gorm.DB
}

// NewCriterionRepository creates a new CriterionRepository
func NewCriterionRepository(db *gorm.DB) CriterionRepository {
	return &GormCriterionRepository{db: db}
}

func (r *GormCriterionRepository) Create(criterion *models.RatingCriterion) error {
	return r.db.Create(criterion).Error
}

func (r *GormCriterionRepository) Update(criterion *models.RatingCriterion) error {
	return r.db.Save(criterion).Error
}

func (r *GormCriterionRepository) FindByID(id uint64) (*models.RatingCriterion, error) {
	var criterion models.RatingCriterion
	if err := r.db.First(&criterion, id).Error; err != nil {
		return nil, err
	}
	return &criterion, nil
}

func (r *GormCriterionRepository) ListActive() ([]models.RatingCriterion, error) {
	var criteria []models.RatingCriterion
	if err := r.db.Where("actif = ?", true).Order("nom").Find(&criteria).Error; err != nil {
		return nil, err
	}
	return criteria, nil
}

// GormRatingRepository is a GORM implementation of RatingRepository.
// History rows are append-only: this type exposes no way to update or
// delete them once written.
type GormRatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &GormRatingRepository{db: db}
}

// CreateWithHistory creates the rating; an initial value is itself a
// change from null and gets its audit row in the same transaction.
func (r *GormRatingRepository) CreateWithHistory(rating *models.Rating, changedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rating).Error; err != nil {
			return err
		}

		if rating.Value == nil {
			return nil
		}

		entry := &models.RatingHistory{
			RatingID:  rating.ID,
			OldValue:  nil,
			NewValue:  *rating.Value,
			ChangedAt: changedAt,
		}
		return tx.Create(entry).Error
	})
}

// FindByID finds a rating
func (r *GormRatingRepository) FindByID(id uint64) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.Preload("Driver").Preload("Rater").Preload("Criterion").
		First(&rating, id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// UpdateValue appends the audit row, then updates the value, in one
// transaction. The audit row is written first so the update can never
// land without it.
func (r *GormRatingRepository) UpdateValue(rating *models.Rating, newValue int, changedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		entry := &models.RatingHistory{
			RatingID:  rating.ID,
			OldValue:  rating.Value,
			NewValue:  newValue,
			ChangedAt: changedAt,
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Rating{}).
			Where("id = ?", rating.ID).
			Update("valeur", newValue).Error; err != nil {
			return err
		}

		rating.Value = &newValue
		return nil
	})
}

// ListHistory returns a rating's audit rows, oldest first
func (r *GormRatingRepository) ListHistory(ratingID uint64) ([]models.RatingHistory, error) {
	var entries []models.RatingHistory
	if err := r.db.Where("rating_id = ?", ratingID).
		Order("date_changement, id").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
