package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mverdier/driver-management-api/internal/constants"
	"github.com/mverdier/driver-management-api/internal/database"
	"github.com/mverdier/driver-management-api/internal/models"
)

// ContextKeyCurrentUser is where RequireGroupManager stores the loaded user.
const ContextKeyCurrentUser = "current_user"

// RequireGroupManager gates group-management routes: the caller must be
// a member of the group manager role group, or a superuser. Denial is
// fatal for the request (403), unlike the recoverable navigation
// redirect.
func RequireGroupManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		if !user.IsSuperuser {
			var count int64
			err := database.GetDB().Table("user_auth_groups").
				Joins("JOIN auth_groups ON auth_groups.id = user_auth_groups.auth_group_id").
				Where("user_auth_groups.user_id = ? AND auth_groups.name = ?", user.ID, constants.GroupManagerGroupName).
				Count(&count).Error
			if err != nil || count == 0 {
				c.JSON(http.StatusForbidden, gin.H{
					"error": "Group manager role required",
				})
				c.Abort()
				return
			}
		}

		c.Set(ContextKeyCurrentUser, user)
		c.Next()
	}
}

// GetCurrentUser retrieves the user loaded by RequireGroupManager.
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(ContextKeyCurrentUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
