package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mverdier/driver-management-api/internal/dto"
	apierrors "github.com/mverdier/driver-management-api/internal/errors"
	"github.com/mverdier/driver-management-api/internal/middleware"
	"github.com/mverdier/driver-management-api/internal/models"
	"github.com/mverdier/driver-management-api/internal/services"
)

// NavigationHandler serves the navbar and the page access checks.
type NavigationHandler struct {
	accessService *services.AccessService
	authService   *services.AuthService
}

// NewNavigationHandler creates a new NavigationHandler.
func NewNavigationHandler(accessService *services.AccessService, authService *services.AuthService) *NavigationHandler {
	return &NavigationHandler{
		accessService: accessService,
		authService:   authService,
	}
}

// GetNavbar returns the navigation visible to the current user.
func (h *NavigationHandler) GetNavbar(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	entries, err := h.accessService.ResolveNavbar(user)
	if err != nil {
		apierrors.InternalError(c, "Failed to resolve navigation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"navbar": dto.ToNavbarDTO(entries),
	})
}

// GetPage checks access to the named page. Denied access is recoverable:
// the response carries the redirect decision instead of an error status.
func (h *NavigationHandler) GetPage(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	pageName := c.Param("name")
	allowed, err := h.accessService.CanAccessPage(user, pageName)
	if err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			apierrors.NotFound(c, "Page not found")
			return
		}
		apierrors.InternalError(c, "Failed to check page access")
		return
	}

	if allowed {
		c.JSON(http.StatusOK, gin.H{
			"page":    pageName,
			"allowed": true,
		})
		return
	}

	decision, err := h.accessService.ResolveRedirect(user)
	if err != nil {
		apierrors.InternalError(c, "Failed to resolve redirect")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     pageName,
		"allowed":  false,
		"redirect": dto.ToRedirectDTO(*decision),
	})
}

func (h *NavigationHandler) currentUser(c *gin.Context) (user *models.User, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}
	return user, true
}
