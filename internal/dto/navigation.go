package dto

import (
	"github.com/mverdier/driver-management-api/internal/models"
	"github.com/mverdier/driver-management-api/internal/services"
)

// NavbarPageDTO is one navigable page
type NavbarPageDTO struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	URLName string `json:"url_name"`
}

// NavbarGroupDTO is one navigation category with its visible pages
type NavbarGroupDTO struct {
	Name  string          `json:"name"`
	Label string          `json:"label"`
	Pages []NavbarPageDTO `json:"pages"`
}

// RedirectDTO is the fallback sent when page access is denied
type RedirectDTO struct {
	TargetPage string `json:"target_page"`
	Level      string `json:"level"`
	Message    string `json:"message"`
}

// ToNavbarDTO converts resolved navbar entries to DTOs
func ToNavbarDTO(entries []services.NavbarEntry) []NavbarGroupDTO {
	groups := make([]NavbarGroupDTO, len(entries))
	for i, entry := range entries {
		pages := make([]NavbarPageDTO, len(entry.Pages))
		for j, page := range entry.Pages {
			pages[j] = ToNavbarPageDTO(page)
		}
		groups[i] = NavbarGroupDTO{
			Name:  entry.Group.Name,
			Label: entry.Group.Label,
			Pages: pages,
		}
	}
	return groups
}

// ToNavbarPageDTO converts a page to its navbar representation
func ToNavbarPageDTO(page models.Page) NavbarPageDTO {
	return NavbarPageDTO{
		Name:    page.Name,
		Label:   page.Label,
		URLName: page.URLName,
	}
}

// ToRedirectDTO converts a redirect decision to DTO
func ToRedirectDTO(decision services.RedirectDecision) RedirectDTO {
	return RedirectDTO{
		TargetPage: decision.TargetPage,
		Level:      string(decision.Level),
		Message:    decision.Message,
	}
}
