package repository

import (
	"time"

	"github.com/mverdier/driver-management-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// ListExcluding lists users whose IDs are not in the given set,
	// used to offer membership candidates for a group.
	ListExcluding(userIDs []uint64) ([]models.User, error)
}

// GroupRepository defines the interface for custom-group data access
type GroupRepository interface {
	// CreateWithCreator creates a group and enrolls its creator as the
	// first member, attributed to themselves, in one transaction.
	CreateWithCreator(group *models.CustomGroup) error

	// FindByID finds a group by ID
	FindByID(id uint64) (*models.CustomGroup, error)

	// List returns all groups
	List() ([]models.CustomGroup, error)

	// Delete deletes a group and cascades its memberships
	Delete(id uint64) error

	// AddMember atomically creates the membership if absent. Returns
	// false without touching added_at/added_by when the pair exists.
	AddMember(groupID, userID uint64, addedBy *uint64, now time.Time) (bool, error)

	// RemoveMember removes a membership. Returns false when none existed.
	RemoveMember(groupID, userID uint64) (bool, error)

	// IsMember reports whether the (group, user) membership exists
	IsMember(groupID, userID uint64) (bool, error)

	// MemberCount counts the members of a group
	MemberCount(groupID uint64) (int64, error)

	// ListMembers lists the memberships of a group with users preloaded
	ListMembers(groupID uint64) ([]models.GroupMembership, error)
}

// AuthGroupRepository defines the interface for role-group data access
type AuthGroupRepository interface {
	// GetOrCreateByName finds or creates a group by name. The bool
	// reports whether the group was created.
	GetOrCreateByName(name string) (*models.AuthGroup, bool, error)

	// FindByID finds an auth group by ID
	FindByID(id uint64) (*models.AuthGroup, error)

	// Delete removes an auth group and its user links
	Delete(id uint64) error

	// AddUser links a user to the group
	AddUser(groupID, userID uint64) error

	// IsUserInGroup reports whether the user belongs to the named group
	IsUserInGroup(userID uint64, name string) (bool, error)
}

// AccessRepository defines the interface for page / page-group /
// association data access used by navigation resolution
type AccessRepository interface {
	// ListAssociations returns the user's page-group associations in
	// insertion order, with page groups preloaded.
	ListAssociations(userID uint64) ([]models.UserPageGroupAssociation, error)

	// HasAssociation reports whether the user is associated with the group
	HasAssociation(userID, pageGroupID uint64) (bool, error)

	// CreateAssociation grants a user visibility into a page group.
	// Returns false when the association already existed.
	CreateAssociation(userID, pageGroupID uint64) (bool, error)

	// ListPageGroups returns every page group ordered by display order
	ListPageGroups() ([]models.PageGroup, error)

	// ListActivePages returns a group's active pages by display order
	ListActivePages(pageGroupID uint64) ([]models.Page, error)

	// FindPageByName finds a page by its unique name
	FindPageByName(name string) (*models.Page, error)
}

// DriverFilter holds filtering options for listing drivers
type DriverFilter struct {
	ServiceID  *uint64
	SiteID     *uint64
	ActiveOnly bool
	Today      time.Time
	Page       int
	PageSize   int
}

// DriverRepository defines the interface for driver data access
type DriverRepository interface {
	// CreateWithSiteHistory creates a driver and opens their first site
	// assignment interval in one transaction.
	CreateWithSiteHistory(driver *models.Driver) error

	// Update persists driver changes. When the site changed, the open
	// site-history interval is closed and a new one opened, atomically
	// with the update.
	Update(driver *models.Driver, previousSiteID uint64, effective time.Time) error

	// FindByID finds a driver with affiliations preloaded
	FindByID(id uint64) (*models.Driver, error)

	// FindByERPID finds a driver by external identifier
	FindByERPID(erpID string) (*models.Driver, error)

	// List retrieves drivers with filtering and pagination
	List(filter DriverFilter) ([]models.Driver, int64, error)

	// ListSiteHistory returns a driver's site assignment intervals
	ListSiteHistory(driverID uint64) ([]models.SiteHistory, error)
}

// RaterRepository defines the interface for rater data access
type RaterRepository interface {
	Create(rater *models.Rater) error
	Update(rater *models.Rater) error
	FindByID(id uint64) (*models.Rater, error)
	List() ([]models.Rater, error)
}

// CriterionRepository defines the interface for rating criteria
type CriterionRepository interface {
	Create(criterion *models.RatingCriterion) error
	Update(criterion *models.RatingCriterion) error
	FindByID(id uint64) (*models.RatingCriterion, error)
	ListActive() ([]models.RatingCriterion, error)
}

// RatingRepository defines the interface for ratings and their
// append-only audit trail. The trail has no update or delete path.
type RatingRepository interface {
	// CreateWithHistory creates a rating; when it carries an initial
	// value the first history row (old value null) is written in the
	// same transaction.
	CreateWithHistory(rating *models.Rating, changedAt time.Time) error

	// FindByID finds a rating
	FindByID(id uint64) (*models.Rating, error)

	// UpdateValue appends the audit row and updates the value in one
	// transaction; the history entry is never skipped.
	UpdateValue(rating *models.Rating, newValue int, changedAt time.Time) error

	// ListHistory returns a rating's audit rows, oldest first
	ListHistory(ratingID uint64) ([]models.RatingHistory, error)
}
