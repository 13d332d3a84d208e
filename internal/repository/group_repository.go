package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/mverdier/driver-management-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateGroup is returned when creating the group fails inside the creation transaction.
	ErrCreateGroup = errors.New("group repository: create group failed")
	// ErrEnrollCreator is returned when enrolling the creator fails inside the creation transaction.
	ErrEnrollCreator = errors.New("group repository: enroll creator failed")
)

// GormGroupRepository is a GORM implementation of GroupRepository
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GormGroupRepository{db: db}
}

// CreateWithCreator creates a group and enrolls its creator as the first
// member, attributed to themselves, atomically.
func (r *GormGroupRepository) CreateWithCreator(group *models.CustomGroup) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateGroup, err)
		}

		creatorID := group.CreatedByID
		member := &models.GroupMembership{
			GroupID:   group.ID,
			UserID:    creatorID,
			AddedAt:   time.Now(),
			AddedByID: &creatorID,
		}
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrEnrollCreator, err)
		}

		return nil
	})
}

// FindByID finds a group by ID
func (r *GormGroupRepository) FindByID(id uint64) (*models.CustomGroup, error) {
	var group models.CustomGroup
	if err := r.db.Preload("CreatedBy").First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns all groups ordered by name
func (r *GormGroupRepository) List() ([]models.CustomGroup, error) {
	var groups []models.CustomGroup
	if err := r.db.Preload("CreatedBy").Order("name").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// Delete deletes a group and its memberships in a transaction
func (r *GormGroupRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMembership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.CustomGroup{}, id).Error
	})
}

// AddMember atomically creates the membership if absent. The composite
// primary key backs the create-if-absent; a duplicate add reports
// created=false and leaves added_at/added_by untouched.
func (r *GormGroupRepository) AddMember(groupID, userID uint64, addedBy *uint64, now time.Time) (bool, error) {
	member := models.GroupMembership{GroupID: groupID, UserID: userID}
	result := r.db.
		Where(models.GroupMembership{GroupID: groupID, UserID: userID}).
		Attrs(models.GroupMembership{AddedAt: now, AddedByID: addedBy}).
		FirstOrCreate(&member)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveMember removes a membership; removed=false means none existed
func (r *GormGroupRepository) RemoveMember(groupID, userID uint64) (bool, error) {
	result := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMembership{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IsMember reports whether the (group, user) membership exists
func (r *GormGroupRepository) IsMember(groupID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MemberCount counts the members of a group
func (r *GormGroupRepository) MemberCount(groupID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.GroupMembership{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

// ListMembers lists the memberships of a group with users preloaded
func (r *GormGroupRepository) ListMembers(groupID uint64) ([]models.GroupMembership, error) {
	var members []models.GroupMembership
	if err := r.db.Preload("User").Preload("AddedBy").
		Where("group_id = ?", groupID).
		Order("added_at").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
