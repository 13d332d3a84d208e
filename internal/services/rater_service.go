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

var ErrRaterNotFound = errors.New("rater not found")

// RaterService implements validate-and-save for rater records.
type RaterService struct {
	raterRepo repository.RaterRepository
}

// NewRaterService creates a new RaterService.
func NewRaterService(raterRepo repository.RaterRepository) *RaterService {
	return &RaterService{raterRepo: raterRepo}
}

// CreateRater normalizes, validates and persists a new rater.
func (s *RaterService) CreateRater(rater *models.Rater) error {
	validation.NormalizeRater(rater)

	if errs := validation.ValidateRater(rater, time.Now()); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if err := s.raterRepo.Create(rater); err != nil {
		return fmt.Errorf("failed to create rater: %w", err)
	}
	return nil
}

// UpdateRater validates and persists changes to an existing rater,
// keeping the display variants written at creation.
func (s *RaterService) UpdateRater(rater *models.Rater) error {
	current, err := s.raterRepo.FindByID(rater.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRaterNotFound
		}
		return fmt.Errorf("failed to find rater: %w", err)
	}

	rater.DisplayLastName = current.DisplayLastName
	rater.DisplayFirstName = current.DisplayFirstName
	validation.NormalizeRater(rater)

	if errs := validation.ValidateRater(rater, time.Now()); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if err := s.raterRepo.Update(rater); err != nil {
		return fmt.Errorf("failed to update rater: %w", err)
	}
	return nil
}

// GetRater returns a rater.
func (s *RaterService) GetRater(id uint64) (*models.Rater, error) {
	rater, err := s.raterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRaterNotFound
		}
		return nil, fmt.Errorf("failed to find rater: %w", err)
	}
	return rater, nil
}

// ListRaters returns all raters.
func (s *RaterService) ListRaters() ([]models.Rater, error) {
	raters, err := s.raterRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list raters: %w", err)
	}
	return raters, nil
}
