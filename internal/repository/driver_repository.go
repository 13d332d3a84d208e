package repository

import (
	"time"

	"github.com/mverdier/driver-management-api/internal/database"
	"github.com/mverdier/driver-management-api/internal/models"
	"github.com/mverdier/driver-management-api/internal/utils"
	"gorm.io/gorm"
)

// GormDriverRepository is a GORM implementation of DriverRepository
type GormDriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository creates a new DriverRepository
func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &GormDriverRepository{db: db}
}

// CreateWithSiteHistory creates the driver and opens the first site
// assignment interval atomically.
func (r *GormDriverRepository) CreateWithSiteHistory(driver *models.Driver) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(driver).Error; err != nil {
			return err
		}

		interval := &models.SiteHistory{
			DriverID:  driver.ID,
			SiteID:    driver.SiteID,
			StartDate: driver.HireDate,
		}
		return tx.Create(interval).Error
	})
}

// Update persists driver changes; a site change closes the open
// site-history interval and opens a new one in the same transaction.
func (r *GormDriverRepository) Update(driver *models.Driver, previousSiteID uint64, effective time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(driver).Error; err != nil {
			return err
		}

		if driver.SiteID == previousSiteID {
			return nil
		}

		if err := tx.Model(&models.SiteHistory{}).
			Where("driver_id = ? AND date_sortie IS NULL", driver.ID).
			Update("date_sortie", effective).Error; err != nil {
			return err
		}

		interval := &models.SiteHistory{
			DriverID:  driver.ID,
			SiteID:    driver.SiteID,
			StartDate: effective,
		}
		return tx.Create(interval).Error
	})
}

// FindByID finds a driver with affiliations preloaded
func (r *GormDriverRepository) FindByID(id uint64) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.Preload("Service").Preload("Site").Preload("Company").
		First(&driver, id).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

// FindByERPID finds a driver by external identifier
func (r *GormDriverRepository) FindByERPID(erpID string) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.Where("erp_id = ?", erpID).First(&driver).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

// List retrieves drivers with filtering and pagination
func (r *GormDriverRepository) List(filter DriverFilter) ([]models.Driver, int64, error) {
	query := r.db.Model(&models.Driver{})

	if filter.ServiceID != nil {
		query = query.Where("service_id = ?", *filter.ServiceID)
	}
	if filter.SiteID != nil {
		query = query.Where("site_id = ?", *filter.SiteID)
	}
	if filter.ActiveOnly {
		query = query.Where("actif_p = ?", true).
			Where("date_sortie IS NULL OR date_sortie > ?", filter.Today)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		query = query.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	var drivers []models.Driver
	if err := query.Preload("Service").Preload("Site").Preload("Company").
		Order("nom, prenom").
		Find(&drivers).Error; err != nil {
		return nil, 0, err
	}

	return drivers, total, nil
}

// ListSiteHistory returns a driver's site assignment intervals
func (r *GormDriverRepository) ListSiteHistory(driverID uint64) ([]models.SiteHistory, error) {
	var intervals []models.SiteHistory
	if err := r.db.Preload("Site").
		Where("driver_id = ?", driverID).
		Order("date_entree").
		Find(&intervals).Error; err != nil {
		return nil, err
	}
	return intervals, nil
}
