// internal/auth/roles.go
package auth

import (
	"strings"

	"woodbank/internal/shared"
)

// Role is the access tier assigned to a user account. Role values are stored
// as free text in the database; Normalize is the boundary that maps stored
// text onto the closed set below.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLead      Role = "lead"
	RoleEmployee  Role = "employee"
	RoleVolunteer Role = "volunteer"
	RoleClient    Role = "client"
)

// Roles lists every recognized role.
var Roles = []Role{RoleAdmin, RoleLead, RoleEmployee, RoleVolunteer, RoleClient}

// Normalize lower-cases a raw role string. The result is only meaningful if
// it matches one of the Role constants; callers treat anything else as an
// unrecognized role (fail-closed).
func Normalize(role string) Role {
	return Role(strings.ToLower(role))
}

// ParseRole converts a raw role string into a Role, rejecting anything
// outside the recognized set. Used at ingestion points (user creation,
// login) so application logic never branches on raw strings.
func ParseRole(role string) (Role, error) {
	r := Normalize(role)
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", shared.ErrInvalidRole
}

func IsAdmin(role string) bool     { return strings.EqualFold(role, string(RoleAdmin)) }
func IsLead(role string) bool      { return strings.EqualFold(role, string(RoleLead)) }
func IsEmployee(role string) bool  { return strings.EqualFold(role, string(RoleEmployee)) }
func IsVolunteer(role string) bool { return strings.EqualFold(role, string(RoleVolunteer)) }
func IsClient(role string) bool    { return strings.EqualFold(role, string(RoleClient)) }

// CanLogin reports whether accounts with the given role may authenticate.
// Clients never hold credentials; unrecognized roles are denied.
func CanLogin(role string) bool {
	switch Normalize(role) {
	case RoleAdmin, RoleLead, RoleEmployee, RoleVolunteer:
		return true
	}
	return false
}

var roleDisplayNames = map[Role]string{
	RoleAdmin:     "Administrator",
	RoleLead:      "Crew Lead",
	RoleEmployee:  "Employee",
	RoleVolunteer: "Volunteer",
	RoleClient:    "Client",
}

// RoleDisplayName returns a human label for a role. Unrecognized roles are
// echoed back unchanged so callers always get something printable.
func RoleDisplayName(role string) string {
	if name, ok := roleDisplayNames[Normalize(role)]; ok {
		return name
	}
	return role
}
