package domain

import "slices"

// Role is the coarse permission level carried by an access credential.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCounselor Role = "counselor"
)

// Known reports whether the role is one the policy evaluator understands.
// Unknown roles are denied, never rejected with an error.
func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleCounselor
}

// Actor is the authenticated caller. It is constructed exactly once at the
// request boundary from the verified credential claims and threaded through
// every call; business logic never re-derives identity.
type Actor struct {
	ID       string
	Role     Role
	TenantID string
	TeamIDs  []string
}

// InTeam reports whether the actor is a member of the given team.
func (a Actor) InTeam(teamID string) bool {
	return slices.Contains(a.TeamIDs, teamID)
}
