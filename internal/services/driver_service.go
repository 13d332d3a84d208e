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
	ErrDriverNotFound = errors.New("driver not found")
	ErrERPIDTaken     = errors.New("a driver with this ERP id already exists")
)

// ValidationError carries the full set of field violations so the caller
// can render them all at once.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// DriverService implements validate-and-save for driver records and
// keeps the site assignment history consistent with site changes.
type DriverService struct {
	driverRepo repository.DriverRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo repository.DriverRepository) *DriverService {
	return &DriverService{driverRepo: driverRepo}
}

// CreateDriver normalizes, validates and persists a new driver. The
// first site-history interval opens at the hire date.
func (s *DriverService) CreateDriver(driver *models.Driver) error {
	validation.NormalizeDriver(driver)

	if errs := validation.ValidateDriver(driver, time.Now()); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if _, err := s.driverRepo.FindByERPID(driver.ERPID); err == nil {
		return ErrERPIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check erp id: %w", err)
	}

	if err := s.driverRepo.CreateWithSiteHistory(driver); err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

// UpdateDriver normalizes, validates and persists changes to an existing
// driver. Display variants set at creation are preserved; a site change
// closes the open site-history interval and opens a new one.
func (s *DriverService) UpdateDriver(driver *models.Driver) error {
	current, err := s.driverRepo.FindByID(driver.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDriverNotFound
		}
		return fmt.Errorf("failed to find driver: %w", err)
	}

	// Display fields are written once; later edits never overwrite them.
	driver.DisplayLastName = current.DisplayLastName
	driver.DisplayFirstName = current.DisplayFirstName
	validation.NormalizeDriver(driver)

	if errs := validation.ValidateDriver(driver, time.Now()); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	if err := s.driverRepo.Update(driver, current.SiteID, validation.DateOnly(time.Now())); err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}
	return nil
}

// GetDriver returns a driver with affiliations.
func (s *DriverService) GetDriver(id uint64) (*models.Driver, error) {
	driver, err := s.driverRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to find driver: %w", err)
	}
	return driver, nil
}

// ListDrivers returns drivers matching the filter.
func (s *DriverService) ListDrivers(filter repository.DriverFilter) ([]models.Driver, int64, error) {
	if filter.ActiveOnly && filter.Today.IsZero() {
		filter.Today = validation.DateOnly(time.Now())
	}
	drivers, total, err := s.driverRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list drivers: %w", err)
	}
	return drivers, total, nil
}

// GetSiteHistory returns a driver's site assignment intervals.
func (s *DriverService) GetSiteHistory(driverID uint64) ([]models.SiteHistory, error) {
	if _, err := s.driverRepo.FindByID(driverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to find driver: %w", err)
	}

	intervals, err := s.driverRepo.ListSiteHistory(driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list site history: %w", err)
	}
	return intervals, nil
}
