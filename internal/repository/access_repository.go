package repository

import (
	"github.com/mverdier/driver-management-api/internal/models"
	"gorm.io/gorm"
)

// GormAuthGroupRepository is a GORM implementation of AuthGroupRepository
type GormAuthGroupRepository struct {
	db *gorm.DB
}

// NewAuthGroupRepository creates a new AuthGroupRepository
func NewAuthGroupRepository(db *gorm.DB) AuthGroupRepository {
	return &GormAuthGroupRepository{db: db}
}

// GetOrCreateByName finds or creates an auth group by name
func (r *GormAuthGroupRepository) GetOrCreateByName(name string) (*models.AuthGroup, bool, error) {
	group := models.AuthGroup{Name: name}
	result := r.db.Where(models.AuthGroup{Name: name}).FirstOrCreate(&group)
	if result.Error != nil {
		return nil, false, result.Error
	}
	return &group, result.RowsAffected > 0, nil
}

// FindByID finds an auth group by ID
func (r *GormAuthGroupRepository) FindByID(id uint64) (*models.AuthGroup, error) {
	var group models.AuthGroup
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// Delete removes an auth group and its user links in a transaction
func (r *GormAuthGroupRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_auth_groups WHERE auth_group_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.AuthGroup{}, id).Error
	})
}

// AddUser links a user to the group
func (r *GormAuthGroupRepository) AddUser(groupID, userID uint64) error {
	return r.db.Model(&models.AuthGroup{ID: groupID}).
		Association("Users").
		Append(&models.User{ID: userID})
}

// IsUserInGroup reports whether the user belongs to the named group
func (r *GormAuthGroupRepository) IsUserInGroup(userID uint64, name string) (bool, error) {
	var count int64
	err := r.db.Table("user_auth_groups").
		Joins("JOIN auth_groups ON auth_groups.id = user_auth_groups.auth_group_id").
		Where("user_auth_groups.user_id = ? AND auth_groups.name = ?", userID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormAccessRepository is a GORM implementation of AccessRepository
type GormAccessRepository struct {
	db *gorm.DB
}

// NewAccessRepository creates a new AccessRepository
func NewAccessRepository(db *gorm.DB) AccessRepository {
	return &GormAccessRepository{db: db}
}

// ListAssociations returns the user's associations in insertion order
func (r *GormAccessRepository) ListAssociations(userID uint64) ([]models.UserPageGroupAssociation, error) {
	var associations []models.UserPageGroupAssociation
	if err := r.db.Preload("PageGroup").
		Where("user_id = ?", userID).
		Order("created_at, page_group_id").
		Find(&associations).Error; err != nil {
		return nil, err
	}
	return associations, nil
}

// HasAssociation reports whether the user is associated with the group
func (r *GormAccessRepository) HasAssociation(userID, pageGroupID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserPageGroupAssociation{}).
		Where("user_id = ? AND page_group_id = ?", userID, pageGroupID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateAssociation grants visibility; created=false when it existed
func (r *GormAccessRepository) CreateAssociation(userID, pageGroupID uint64) (bool, error) {
	assoc := models.UserPageGroupAssociation{UserID: userID, PageGroupID: pageGroupID}
	result := r.db.
		Where(models.UserPageGroupAssociation{UserID: userID, PageGroupID: pageGroupID}).
		FirstOrCreate(&assoc)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListPageGroups returns every page group by display order then name
func (r *GormAccessRepository) ListPageGroups() ([]models.PageGroup, error) {
	var groups []models.PageGroup
	if err := r.db.Order("display_order, name").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// ListActivePages returns a group's active pages by display order
func (r *GormAccessRepository) ListActivePages(pageGroupID uint64) ([]models.Page, error) {
	var pages []models.Page
	if err := r.db.Where("page_group_id = ? AND is_active = ?", pageGroupID, true).
		Order("display_order, name").
		Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// FindPageByName finds a page by its unique name
func (r *GormAccessRepository) FindPageByName(name string) (*models.Page, error) {
	var page models.Page
	if err := r.db.Preload("PageGroup").Where("name = ?", name).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}
