package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mverdier/driver-management-api/internal/constants"
	"github.com/mverdier/driver-management-api/internal/models"
	"github.com/mverdier/driver-management-api/internal/repository"
)

type groupTestEnv struct {
	db      *gorm.DB
	service *GroupService
}

func setupGroupTestEnv(t *testing.T) groupTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.AuthGroup{},
		&models.CustomGroup{},
		&models.GroupMembership{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	authGroupRepo := repository.NewAuthGroupRepository(db)
	service := NewGroupService(groupRepo, authGroupRepo, userRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return groupTestEnv{db: db, service: service}
}

func (env groupTestEnv) createUser(t *testing.T, username string, superuser bool) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
		IsSuperuser:  superuser,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env groupTestEnv) createGroup(t *testing.T, name string, creatorID uint64) *models.CustomGroup {
	t.Helper()
	group, err := env.service.CreateGroup(CreateGroupInput{Name: name, CreatorID: creatorID})
	require.NoError(t, err)
	return group
}

func TestCreateGroup_EnrollsCreator(t *testing.T) {
	env := setupGroupTestEnv(t)
	creator := env.createUser(t, "creator", false)

	group := env.createGroup(t, "Exploitation", creator.ID)

	isMember, err := env.service.IsMember(group.ID, creator.ID)
	require.NoError(t, err)
	require.True(t, isMember)

	members, err := repository.NewGroupRepository(env.db).ListMembers(group.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.NotNil(t, members[0].AddedByID)
	require.Equal(t, creator.ID, *members[0].AddedByID)
}

func TestCreateGroup_EmptyName(t *testing.T) {
	env := setupGroupTestEnv(t)
	creator := env.createUser(t, "creator", false)

	_, err := env.service.CreateGroup(CreateGroupInput{Name: "   ", CreatorID: creator.ID})
	require.ErrorIs(t, err, ErrInvalidGroupName)
}

func TestCreateGroup_DuplicateName(t *testing.T) {
	env := setupGroupTestEnv(t)
	creator := env.createUser(t, "creator", false)
	env.createGroup(t, "Exploitation", creator.ID)

	_, err := env.service.CreateGroup(CreateGroupInput{Name: "Exploitation", CreatorID: creator.ID})
	require.ErrorIs(t, err, ErrGroupNameTaken)
}

func TestAddMember_Idempotent(t *testing.T) {
	env := setupGroupTestEnv(t)
	creator := env.createUser(t, "creator", false)
	member := env.createUser(t, "member", false)
	group := env.createGroup(t, "Exploitation", creator.ID)

	actorID := creator.ID
	created, err := env.service.AddMember(group.ID, member.ID, &actorID)
	require.NoError(t, err)
	require.True(t, created)

	count, err := env.service.MemberCount(group.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	// Second add reports created=false and leaves the count unchanged.
	created, err = env.service.AddMember(group.ID, member.ID, &actorID)
	require.NoError(t, err)
	require.False(t, created)

	count, err = env.service.MemberCount(group.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestAddMember_UnknownUser(t *testing.T) {
	env := setupGroupTestEnv(t)
	creator := env.createUser(t, "creator", false)
	group := env.createGroup(t, "Exploitation", creator.ID)

	actorID := creator.ID
	_, err := env.service.AddMember(group.ID, 9999, &actorID)
	require.ErrorIs(t, err, ErrTargetUserNotFound)

	count, err := env.service.MemberCount(group.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestAddMember_UnknownGroup(t *testing.T) {
	env := setupGroupTestEnv(t)
	creator := env.createUser(t, "creator", false)

	actorID := creator.ID
	_, err := env.service.AddMember(9999, creator.ID, &actorID)
	require.ErrorIs(t, err, ErrGroupNotFound)
}

func TestRemoveMember_NonMember(t *testing.T) {
	env := setupGroupTestEnv(t)
	creator := env.createUser(t, "creator", false)
	outsider := env.createUser(t, "outsider", false)
	group := env.createGroup(t, "Exploitation", creator.ID)

	err := env.service.RemoveMember(group.ID, outsider.ID)
	require.ErrorIs(t, err, ErrMemberNotFound)

	count, err := env.service.MemberCount(group.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestRemoveMember_Success(t *testing.T) {
	env := setupGroupTestEnv(t)
	creator := env.createUser(t, "creator", false)
	member := env.createUser(t, "member", false)
	group := env.createGroup(t, "Exploitation", creator.ID)

	actorID := creator.ID
	_, err := env.service.AddMember(group.ID, member.ID, &actorID)
	require.NoError(t, err)

	require.NoError(t, env.service.RemoveMember(group.ID, member.ID))

	isMember, err := env.service.IsMember(group.ID, member.ID)
	require.NoError(t, err)
	require.False(t, isMember)
}

func TestGetGroupWithMembers_Candidates(t *testing.T) {
	env := setupGroupTestEnv(t)
	creator := env.createUser(t, "creator", false)
	outsider := env.createUser(t, "outsider", false)
	group := env.createGroup(t, "Exploitation", creator.ID)

	_, members, candidates, err := env.service.GetGroupWithMembers(group.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Len(t, candidates, 1)
	require.Equal(t, outsider.ID, candidates[0].ID)
}

func TestIsGroupManager(t *testing.T) {
	env := setupGroupTestEnv(t)

	_, err := env.service.EnsureGroupManagerGroup()
	require.NoError(t, err)

	superuser := env.createUser(t, "root", true)
	manager := env.createUser(t, "manager", false)
	regular := env.createUser(t, "regular", false)

	require.NoError(t, env.service.GrantGroupManager(manager.ID))

	ok, err := env.service.IsGroupManager(superuser)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = env.service.IsGroupManager(manager)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = env.service.IsGroupManager(regular)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEnsureGroupManagerGroup_Idempotent(t *testing.T) {
	env := setupGroupTestEnv(t)

	created, err := env.service.EnsureGroupManagerGroup()
	require.NoError(t, err)
	require.True(t, created)

	created, err = env.service.EnsureGroupManagerGroup()
	require.NoError(t, err)
	require.False(t, created)
}

func TestDeleteAuthGroup_ProtectedGroup(t *testing.T) {
	env := setupGroupTestEnv(t)

	_, err := env.service.EnsureGroupManagerGroup()
	require.NoError(t, err)

	var protected models.AuthGroup
	require.NoError(t, env.db.Where("name = ?", constants.GroupManagerGroupName).First(&protected).Error)

	// Rejected regardless of who asks; the caller privilege never enters
	// this check.
	err = env.service.DeleteAuthGroup(protected.ID)
	require.ErrorIs(t, err, ErrProtectedGroup)

	var count int64
	require.NoError(t, env.db.Model(&models.AuthGroup{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestDeleteAuthGroup_RegularGroup(t *testing.T) {
	env := setupGroupTestEnv(t)

	other := &models.AuthGroup{Name: "exploitation"}
	require.NoError(t, env.db.Create(other).Error)

	require.NoError(t, env.service.DeleteAuthGroup(other.ID))

	err := env.db.First(&models.AuthGroup{}, other.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteGroup_CascadesMemberships(t *testing.T) {
	env := setupGroupTestEnv(t)
	creator := env.createUser(t, "creator", false)
	group := env.createGroup(t, "Exploitation", creator.ID)

	require.NoError(t, env.service.DeleteGroup(group.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.GroupMembership{}).
		Where("group_id = ?", group.ID).Count(&count).Error)
	require.Equal(t, int64(0), count)
}
