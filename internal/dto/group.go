package dto

import (
	"time"

	"github.com/mverdier/driver-management-api/internal/models"
)

// GroupDTO represents a custom group
type GroupDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// GroupMemberDTO represents a member in a group, with audit metadata
type GroupMemberDTO struct {
	User    UserDTO   `json:"user"`
	AddedAt time.Time `json:"added_at"`
	AddedBy *string   `json:"added_by"`
}

// GroupDetailDTO is a group with its members and membership candidates
type GroupDetailDTO struct {
	GroupDTO
	Members    []GroupMemberDTO `json:"members"`
	Candidates []UserDTO        `json:"candidates"`
}

// ToGroupDTO converts a group to DTO
func ToGroupDTO(group models.CustomGroup) GroupDTO {
	return GroupDTO{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatedBy:   group.CreatedBy.Username,
		CreatedAt:   group.CreatedAt,
	}
}

// ToGroupMemberDTO converts a membership to DTO
func ToGroupMemberDTO(member models.GroupMembership) GroupMemberDTO {
	var addedBy *string
	if member.AddedBy != nil {
		username := member.AddedBy.Username
		addedBy = &username
	}
	return GroupMemberDTO{
		User:    ToUserDTO(member.User),
		AddedAt: member.AddedAt,
		AddedBy: addedBy,
	}
}

// ToGroupDetailDTO converts a group with members and candidates to DTO
func ToGroupDetailDTO(group models.CustomGroup, members []models.GroupMembership, candidates []models.User) GroupDetailDTO {
	memberDTOs := make([]GroupMemberDTO, len(members))
	for i, m := range members {
		memberDTOs[i] = ToGroupMemberDTO(m)
	}

	candidateDTOs := make([]UserDTO, len(candidates))
	for i, u := range candidates {
		candidateDTOs[i] = ToUserDTO(u)
	}

	return GroupDetailDTO{
		GroupDTO:   ToGroupDTO(group),
		Members:    memberDTOs,
		Candidates: candidateDTOs,
	}
}
