package constants

// Context and session keys
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "driver_session"
)

// Authentication
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// GroupManagerGroupName is the fixed auth group whose members may manage
// custom groups. Provisioned at bootstrap and protected from deletion.
const GroupManagerGroupName = "gestionnaire_groupes"

// DefaultLandingPage is where users with no page-group association are sent.
const DefaultLandingPage = "accueil"
