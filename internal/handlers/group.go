package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mverdier/driver-management-api/internal/dto"
	apierrors "github.com/mverdier/driver-management-api/internal/errors"
	"github.com/mverdier/driver-management-api/internal/middleware"
	"github.com/mverdier/driver-management-api/internal/services"
)

// GroupHandler serves the group-management interface. Every route is
// behind RequireGroupManager.
type GroupHandler struct {
	groupService *services.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

// ListGroups returns all custom groups.
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupService.ListGroups()
	if err != nil {
		apierrors.InternalError(c, "Failed to list groups")
		return
	}

	groupDTOs := make([]dto.GroupDTO, len(groups))
	for i, g := range groups {
		groupDTOs[i] = dto.ToGroupDTO(g)
	}

	c.JSON(http.StatusOK, gin.H{
		"groups": groupDTOs,
	})
}

// CreateGroup creates a custom group; the creator is enrolled as the
// first member.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateGroupRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	group, err := h.groupService.CreateGroup(services.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   user.ID,
	})
	if err != nil {
		respondGroupError(c, err)
		return
	}

	group.CreatedBy = user
	c.JSON(http.StatusCreated, dto.ToGroupDTO(*group))
}

// GetGroup returns a group with its members and membership candidates.
func (h *GroupHandler) GetGroup(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	group, members, candidates, err := h.groupService.GetGroupWithMembers(groupID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupDetailDTO(*group, members, candidates))
}

// DeleteGroup removes a custom group and its memberships.
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.DeleteGroup(groupID); err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Group deleted successfully",
	})
}

// AddMember enrolls a user into the group. The duplicate case is not an
// error: the response reports created=false with a warning message.
func (h *GroupHandler) AddMember(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	actor, actorOK := middleware.GetCurrentUser(c)
	if !actorOK {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddMemberRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	actorID := actor.ID
	created, err := h.groupService.AddMember(groupID, req.UserID, &actorID)
	if err != nil {
		respondGroupError(c, err)
		return
	}

	message := "Utilisateur ajouté au groupe."
	if !created {
		message = "Utilisateur déjà membre du groupe."
	}
	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"message": message,
	})
}

// RemoveMember removes a user from the group. Removing a non-member is
// reported, not silently swallowed.
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.groupService.RemoveMember(groupID, userID); err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Utilisateur supprimé du groupe.",
	})
}

// DeleteAuthGroup removes a role group. The group manager role group is
// protected and the rejection is surfaced explicitly.
func (h *GroupHandler) DeleteAuthGroup(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.DeleteAuthGroup(groupID); err != nil {
		respondGroupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Auth group deleted successfully",
	})
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

func respondGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProtectedGroup):
		apierrors.ProtectedResource(c, err.Error())
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrAuthGroupNotFound),
		errors.Is(err, services.ErrTargetUserNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidGroupName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrGroupNameTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
