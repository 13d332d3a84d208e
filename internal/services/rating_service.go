package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mverdier/driver-management-api/internal/models"
	"github.com/mverdier/driver-management-api/internal/repository"
	"github.com/mverdier/driver-management-api/internal/validation"
)

var (
	ErrRatingNotFound  = errors.New("rating not found")
	ErrDuplicateRating = errors.New("a rating for this driver, criterion, date and rater already exists")
)

// RatingService owns ratings and their append-only audit trail. Every
// value change, including the first assignment from null, writes exactly
// one history row atomically with the update.
type RatingService struct {
	ratingRepo    repository.RatingRepository
	criterionRepo repository.CriterionRepository
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratingRepo repository.RatingRepository, criterionRepo repository.CriterionRepository) *RatingService {
	return &RatingService{
		ratingRepo:    ratingRepo,
		criterionRepo: criterionRepo,
	}
}

// CreateRating records a new rating. An initial value is audited as a
// change from null.
func (s *RatingService) CreateRating(rating *models.Rating) error {
	if rating.Value != nil {
		if err := s.checkRange(rating.CriterionID, *rating.Value); err != nil {
			return err
		}
	}

	if err := s.ratingRepo.CreateWithHistory(rating, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRating
		}
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

// SetValue changes a rating's value. The audit row carries the previous
// value (null on first assignment) and is never skipped.
func (s *RatingService) SetValue(ratingID uint64, newValue int) (*models.Rating, error) {
	rating, err := s.ratingRepo.FindByID(ratingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, fmt.Errorf("failed to find rating: %w", err)
	}

	if err := s.checkRange(rating.CriterionID, newValue); err != nil {
		return nil, err
	}

	if err := s.ratingRepo.UpdateValue(rating, newValue, time.Now()); err != nil {
		return nil, fmt.Errorf("failed to update rating value: %w", err)
	}
	return rating, nil
}

// GetHistory returns the audit rows of a rating, oldest first.
func (s *RatingService) GetHistory(ratingID uint64) ([]models.RatingHistory, error) {
	if _, err := s.ratingRepo.FindByID(ratingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, fmt.Errorf("failed to find rating: %w", err)
	}

	entries, err := s.ratingRepo.ListHistory(ratingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rating history: %w", err)
	}
	return entries, nil
}

func (s *RatingService) checkRange(criterionID uint64, value int) error {
	criterion, err := s.criterionRepo.FindByID(criterionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCriterionNotFound
		}
		return fmt.Errorf("failed to find criterion: %w", err)
	}

	if value < criterion.MinValue || value > criterion.MaxValue {
		var errs validation.Errors
		errs.Add("valeur", fmt.Sprintf("La valeur doit être comprise entre %d et %d.", criterion.MinValue, criterion.MaxValue))
		return &ValidationError{Fields: errs}
	}
	return nil
}
