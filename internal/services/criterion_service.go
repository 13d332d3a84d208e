package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mverdier/driver-management-api/internal/models"
	"github.com/mverdier/driver-management-api/internal/repository"
	"github.com/mverdier/driver-management-api/internal/validation"
)

var ErrCriterionNotFound = errors.New("rating criterion not found")

// CriterionService implements validate-and-save for rating criteria.
type CriterionService struct {
	criterionRepo repository.CriterionRepository
}

// NewCriterionService creates a new CriterionService.
func NewCriterionService(criterionRepo repository.CriterionRepository) *CriterionService {
	return &CriterionService{criterionRepo: criterionRepo}
}

// CreateCriterion validates and persists a new criterion.
func (s *CriterionService) CreateCriterion(criterion *models.RatingCriterion) error {
	criterion.Name = strings.TrimSpace(criterion.Name)

	if errs := validation.ValidateCriterion(criterion); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if err := s.criterionRepo.Create(criterion); err != nil {
		return fmt.Errorf("failed to create criterion: %w", err)
	}
	return nil
}

// UpdateCriterion validates and persists changes to a criterion.
func (s *CriterionService) UpdateCriterion(criterion *models.RatingCriterion) error {
	if _, err := s.criterionRepo.FindByID(criterion.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCriterionNotFound
		}
		return fmt.Errorf("failed to find criterion: %w", err)
	}

	criterion.Name = strings.TrimSpace(criterion.Name)
	if errs := validation.ValidateCriterion(criterion); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if err := s.criterionRepo.Update(criterion); err != nil {
		return fmt.Errorf("failed to update criterion: %w", err)
	}
	return nil
}

// ListActiveCriteria returns the criteria currently usable for rating.
func (s *CriterionService) ListActiveCriteria() ([]models.RatingCriterion, error) {
	criteria, err := s.criterionRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list criteria: %w", err)
	}
	return criteria, nil
}
