package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mverdier/driver-management-api/internal/constants"
	"github.com/mverdier/driver-management-api/internal/models"
	"github.com/mverdier/driver-management-api/internal/repository"
)

var ErrPageNotFound = errors.New("page not found")

// NavbarEntry is one navigation category with its visible pages, in
// display order.
type NavbarEntry struct {
	Group models.PageGroup
	Pages []models.Page
}

// NoticeLevel qualifies the message attached to a redirect decision.
type NoticeLevel string

const (
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// RedirectDecision is the fallback computed when page access is denied.
// Denied navigation is recoverable: the caller redirects and shows the
// notice instead of failing.
type RedirectDecision struct {
	TargetPage string
	Level      NoticeLevel
	Message    string
}

// AccessService resolves page-group navigation visibility. The
// group-manager gate is a separate concern owned by GroupService; the
// superuser bypass here applies to navigation only.
type AccessService struct {
	accessRepo repository.AccessRepository
}

// NewAccessService creates a new AccessService.
func NewAccessService(accessRepo repository.AccessRepository) *AccessService {
	return &AccessService{accessRepo: accessRepo}
}

// ResolveNavbar computes the navigation visible to the user: one entry
// per accessible page group with its active pages in display order.
// Superusers see every page group regardless of associations; other
// users see the groups they are associated with, in association
// insertion order.
func (s *AccessService) ResolveNavbar(user *models.User) ([]NavbarEntry, error) {
	groups, err := s.visibleGroups(user)
	if err != nil {
		return nil, err
	}

	entries := make([]NavbarEntry, 0, len(groups))
	for _, group := range groups {
		pages, err := s.accessRepo.ListActivePages(group.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list pages of group %q: %w", group.Name, err)
		}
		entries = append(entries, NavbarEntry{Group: group, Pages: pages})
	}
	return entries, nil
}

// CanAccessPage reports whether the user may view the named page.
func (s *AccessService) CanAccessPage(user *models.User, pageName string) (bool, error) {
	page, err := s.accessRepo.FindPageByName(pageName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPageNotFound
		}
		return false, fmt.Errorf("failed to find page: %w", err)
	}

	if user.IsSuperuser {
		return true, nil
	}

	ok, err := s.accessRepo.HasAssociation(user.ID, page.PageGroupID)
	if err != nil {
		return false, fmt.Errorf("failed to check association: %w", err)
	}
	return ok, nil
}

// ResolveRedirect computes where to send a user denied access to a page:
// the lowest-order active page of their first associated group, with a
// warning. A user with no associations at all lands on the default page
// with an error notice.
func (s *AccessService) ResolveRedirect(user *models.User) (*RedirectDecision, error) {
	associations, err := s.accessRepo.ListAssociations(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list associations: %w", err)
	}

	// Only the first associated group is considered; if it has no
	// active page the user falls through to the default landing.
	if len(associations) > 0 {
		pages, err := s.accessRepo.ListActivePages(associations[0].PageGroupID)
		if err != nil {
			return nil, fmt.Errorf("failed to list pages of group %d: %w", associations[0].PageGroupID, err)
		}
		if len(pages) > 0 {
			first := pages[0]
			return &RedirectDecision{
				TargetPage: first.Name,
				Level:      NoticeWarning,
				Message:    fmt.Sprintf("Vous n'avez pas accès à cette page. Redirection vers %s", first.Name),
			}, nil
		}
	}

	return &RedirectDecision{
		TargetPage: constants.DefaultLandingPage,
		Level:      NoticeError,
		Message:    "Aucune page accessible trouvée.",
	}, nil
}

// GrantAssociation gives a user navigation visibility into a page group.
func (s *AccessService) GrantAssociation(userID, pageGroupID uint64) (created bool, err error) {
	created, err = s.accessRepo.CreateAssociation(userID, pageGroupID)
	if err != nil {
		return false, fmt.Errorf("failed to create association: %w", err)
	}
	return created, nil
}

func (s *AccessService) visibleGroups(user *models.User) ([]models.PageGroup, error) {
	if user.IsSuperuser {
		groups, err := s.accessRepo.ListPageGroups()
		if err != nil {
			return nil, fmt.Errorf("failed to list page groups: %w", err)
		}
		return groups, nil
	}

	associations, err := s.accessRepo.ListAssociations(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list associations: %w", err)
	}

	groups := make([]models.PageGroup, 0, len(associations))
	for _, assoc := range associations {
		groups = append(groups, assoc.PageGroup)
	}
	return groups, nil
}
