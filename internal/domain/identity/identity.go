package identity

import "strings"

// Role is the resolved role of an authenticated caller. Authentication
// itself happens in an external provider; this package only models the
// identity the provider hands us.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "farm_owner"
)

type UserID string

// Principal is the resolved caller passed explicitly into every guarded
// operation. No ambient session state exists below the HTTP layer.
type Principal struct {
	ID   UserID
	Role Role
}

func (p Principal) IsZero() bool {
	return p.ID == "" && p.Role == ""
}

// ParseRole normalizes a textual role claim. Unknown roles map to the
// least-privileged owner role.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleOwner
	}
}
