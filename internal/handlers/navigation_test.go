package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mverdier/driver-management-api/internal/constants"
	"github.com/mverdier/driver-management-api/internal/database"
	"github.com/mverdier/driver-management-api/internal/models"
	"github.com/mverdier/driver-management-api/internal/repository"
	"github.com/mverdier/driver-management-api/internal/services"
)

type navigationTestEnv struct {
	db            *gorm.DB
	handler       *NavigationHandler
	accessService *services.AccessService
}

func setupNavigationTestEnv(t *testing.T) navigationTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.PageGroup{},
		&models.Page{},
		&models.UserPageGroupAssociation{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	accessService := services.NewAccessService(repository.NewAccessRepository(db))
	authService := services.NewAuthService(repository.NewUserRepository(db))
	handler := NewNavigationHandler(accessService, authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return navigationTestEnv{db: db, handler: handler, accessService: accessService}
}

func (env navigationTestEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hashedpassword"}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env navigationTestEnv) seedPages(t *testing.T) (*models.PageGroup, *models.PageGroup) {
	t.Helper()

	groupA := &models.PageGroup{Name: "exploitation", Label: "Exploitation", DisplayOrder: 1}
	groupB := &models.PageGroup{Name: "administration", Label: "Administration", DisplayOrder: 2}
	require.NoError(t, env.db.Create(groupA).Error)
	require.NoError(t, env.db.Create(groupB).Error)

	pages := []models.Page{
		{Name: "planning", Label: "Planning", URLName: "planning", PageGroupID: groupA.ID, DisplayOrder: 1, IsActive: true},
		{Name: "tableau", Label: "Tableau", URLName: "tableau", PageGroupID: groupA.ID, DisplayOrder: 2, IsActive: true},
		{Name: "comptes", Label: "Comptes", URLName: "comptes", PageGroupID: groupB.ID, DisplayOrder: 1, IsActive: true},
	}
	for i := range pages {
		require.NoError(t, env.db.Create(&pages[i]).Error)
	}
	return groupA, groupB
}

func TestGetNavbar(t *testing.T) {
	env := setupNavigationTestEnv(t)
	user := env.createUser(t, "user")
	groupA, _ := env.seedPages(t)

	_, err := env.accessService.GrantAssociation(user.ID, groupA.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/navigation", nil)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetNavbar(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	navbar := response["navbar"].([]interface{})
	require.Len(t, navbar, 1)
	entry := navbar[0].(map[string]interface{})
	require.Equal(t, "exploitation", entry["name"])
	require.Len(t, entry["pages"].([]interface{}), 2)
}

func TestGetPage_Allowed(t *testing.T) {
	env := setupNavigationTestEnv(t)
	user := env.createUser(t, "user")
	groupA, _ := env.seedPages(t)

	_, err := env.accessService.GrantAssociation(user.ID, groupA.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/pages/planning", nil)
	c.Params = gin.Params{{Key: "name", Value: "planning"}}
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetPage(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, true, response["allowed"])
}

func TestGetPage_DeniedRedirectsToFirstGroup(t *testing.T) {
	env := setupNavigationTestEnv(t)
	user := env.createUser(t, "user")
	groupA, _ := env.seedPages(t)

	_, err := env.accessService.GrantAssociation(user.ID, groupA.ID)
	require.NoError(t, err)

	// Denied access is a 200 with a redirect decision, not an error.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/pages/comptes", nil)
	c.Params = gin.Params{{Key: "name", Value: "comptes"}}
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetPage(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, false, response["allowed"])

	redirect := response["redirect"].(map[string]interface{})
	require.Equal(t, "planning", redirect["target_page"])
	require.Equal(t, "warning", redirect["level"])
}

func TestGetPage_UnknownPage(t *testing.T) {
	env := setupNavigationTestEnv(t)
	user := env.createUser(t, "user")
	env.seedPages(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/pages/inconnue", nil)
	c.Params = gin.Params{{Key: "name", Value: "inconnue"}}
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetPage(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
