package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mverdier/driver-management-api/internal/constants"
	"github.com/mverdier/driver-management-api/internal/models"
	"github.com/mverdier/driver-management-api/internal/repository"
)

var (
	ErrGroupNotFound    = errors.New("group not found")
	ErrInvalidGroupName = errors.New("group name cannot be empty")
	ErrGroupNameTaken   = errors.New("a group with this name already exists")
	ErrMemberNotFound   = errors.New("user is not a member of this group")
	ErrTargetUserNotFound = errors.New("user not found")
	// ErrProtectedGroup is returned on any attempt to delete the group
	// manager role group, regardless of caller privilege.
	ErrProtectedGroup = errors.New("the group manager role group is protected and cannot be deleted")
	ErrAuthGroupNotFound = errors.New("auth group not found")
)

// GroupService owns custom groups and their memberships, and the
// group-manager gate controlling who may mutate them.
type GroupService struct {
	groupRepo     repository.GroupRepository
	authGroupRepo repository.AuthGroupRepository
	userRepo      repository.UserRepository
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, authGroupRepo repository.AuthGroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{
		groupRepo:     groupRepo,
		authGroupRepo: authGroupRepo,
		userRepo:      userRepo,
	}
}

// IsGroupManager reports whether the user may mutate group memberships:
// membership in the fixed manager group, or superuser. Superuser here is
// an additional alternative check, not a replacement for the role group.
func (s *GroupService) IsGroupManager(user *models.User) (bool, error) {
	if user.IsSuperuser {
		return true, nil
	}
	ok, err := s.authGroupRepo.IsUserInGroup(user.ID, constants.GroupManagerGroupName)
	if err != nil {
		return false, fmt.Errorf("failed to check group manager role: %w", err)
	}
	return ok, nil
}

// EnsureGroupManagerGroup provisions the manager role group once.
// Idempotent; called from the server bootstrap after migrations.
func (s *GroupService) EnsureGroupManagerGroup() (created bool, err error) {
	_, created, err = s.authGroupRepo.GetOrCreateByName(constants.GroupManagerGroupName)
	if err != nil {
		return false, fmt.Errorf("failed to provision group manager group: %w", err)
	}
	return created, nil
}

// DeleteAuthGroup removes a role group. The group manager group is
// protected: deleting it is rejected explicitly, never silently ignored.
func (s *GroupService) DeleteAuthGroup(id uint64) error {
	group, err := s.authGroupRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAuthGroupNotFound
		}
		return fmt.Errorf("failed to find auth group: %w", err)
	}

	if group.Name == constants.GroupManagerGroupName {
		return ErrProtectedGroup
	}

	if err := s.authGroupRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete auth group: %w", err)
	}
	return nil
}

// GrantGroupManager adds a user to the manager role group.
func (s *GroupService) GrantGroupManager(userID uint64) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTargetUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	group, _, err := s.authGroupRepo.GetOrCreateByName(constants.GroupManagerGroupName)
	if err != nil {
		return fmt.Errorf("failed to load group manager group: %w", err)
	}
	if err := s.authGroupRepo.AddUser(group.ID, userID); err != nil {
		return fmt.Errorf("failed to grant group manager role: %w", err)
	}
	return nil
}

// CreateGroupInput represents parameters to create a custom group.
type CreateGroupInput struct {
	Name        string
	Description string
	CreatorID   uint64
}

// CreateGroup creates a custom group; the creator becomes its first
// member, attributed to themselves.
func (s *GroupService) CreateGroup(input CreateGroupInput) (*models.CustomGroup, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidGroupName
	}

	group := &models.CustomGroup{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatedByID: input.CreatorID,
	}

	if err := s.groupRepo.CreateWithCreator(group); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrGroupNameTaken
		}
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// ListGroups returns all custom groups.
func (s *GroupService) ListGroups() ([]models.CustomGroup, error) {
	groups, err := s.groupRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// GetGroupWithMembers returns a group, its memberships and the users not
// yet enrolled (membership candidates).
func (s *GroupService) GetGroupWithMembers(groupID uint64) (*models.CustomGroup, []models.GroupMembership, []models.User, error) {
	group, err := s.groupRepo.FindByID(groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrGroupNotFound
		}
		return nil, nil, nil, fmt.Errorf("failed to find group: %w", err)
	}

	members, err := s.groupRepo.ListMembers(groupID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	memberIDs := make([]uint64, len(members))
	for i, m := range members {
		memberIDs[i] = m.UserID
	}

	candidates, err := s.userRepo.ListExcluding(memberIDs)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list candidate users: %w", err)
	}

	return group, members, candidates, nil
}

// DeleteGroup removes a custom group and cascades its memberships.
func (s *GroupService) DeleteGroup(groupID uint64) error {
	if _, err := s.groupRepo.FindByID(groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to find group: %w", err)
	}

	if err := s.groupRepo.Delete(groupID); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// AddMember enrolls a user. Idempotent: created=false means the user was
// already a member and nothing changed.
func (s *GroupService) AddMember(groupID, userID uint64, addedBy *uint64) (created bool, err error) {
	if _, err := s.groupRepo.FindByID(groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrGroupNotFound
		}
		return false, fmt.Errorf("failed to find group: %w", err)
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrTargetUserNotFound
		}
		return false, fmt.Errorf("failed to find user: %w", err)
	}

	created, err = s.groupRepo.AddMember(groupID, userID, addedBy, time.Now())
	if err != nil {
		return false, fmt.Errorf("failed to add member: %w", err)
	}
	return created, nil
}

// RemoveMember removes a user from a group. Removing a non-member
// reports ErrMemberNotFound and leaves state unchanged.
func (s *GroupService) RemoveMember(groupID, userID uint64) error {
	if _, err := s.groupRepo.FindByID(groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return fmt.Errorf("failed to find group: %w", err)
	}

	removed, err := s.groupRepo.RemoveMember(groupID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if !removed {
		return ErrMemberNotFound
	}
	return nil
}

// IsMember reports whether the user belongs to the group.
func (s *GroupService) IsMember(groupID, userID uint64) (bool, error) {
	return s.groupRepo.IsMember(groupID, userID)
}

// MemberCount counts a group's members.
func (s *GroupService) MemberCount(groupID uint64) (int64, error) {
	return s.groupRepo.MemberCount(groupID)
}
