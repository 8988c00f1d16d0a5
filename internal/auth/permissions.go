// internal/auth/permissions.go
package auth

// Permission is one discrete capability a UI action can be gated on.
type Permission int

const (
	PermManageUsers Permission = iota
	PermManageAllClients
	PermManageAgencies
	PermManageAllVolunteers
	PermManageAllInventory
	PermManageAllOrders
	PermViewAllReports
	PermManageSystemSettings
	PermViewClients
	PermEditClients
	PermAddOrders
	PermEditOrders
	PermViewInventory
	PermEditInventory
	PermViewOwnInfo
	PermEditOwnInfo
)

// Permissions lists every defined permission, in declaration order.
var Permissions = []Permission{
	PermManageUsers,
	PermManageAllClients,
	PermManageAgencies,
	PermManageAllVolunteers,
	PermManageAllInventory,
	PermManageAllOrders,
	PermViewAllReports,
	PermManageSystemSettings,
	PermViewClients,
	PermEditClients,
	PermAddOrders,
	PermEditOrders,
	PermViewInventory,
	PermEditInventory,
	PermViewOwnInfo,
	PermEditOwnInfo,
}

// rolePermissions is the single declarative grant table. Admin is absent on
// purpose: admins pass every check unconditionally, including permissions
// added after this table was written. Every other role is denied anything
// not listed here.
var rolePermissions = map[Role][]Permission{
	RoleLead: {
		// Everything except user management and system settings.
		PermManageAllClients,
		PermManageAgencies,
		PermManageAllVolunteers,
		PermManageAllInventory,
		PermManageAllOrders,
		PermViewAllReports,
		PermViewClients,
		PermEditClients,
		PermAddOrders,
		PermEditOrders,
		PermViewInventory,
		PermEditInventory,
		PermViewOwnInfo,
		PermEditOwnInfo,
	},
	RoleEmployee: {
		// Employees may read inventory but never modify it.
		PermViewClients,
		PermEditClients,
		PermAddOrders,
		PermEditOrders,
		PermViewInventory,
	},
	RoleVolunteer: {
		PermViewOwnInfo,
		PermEditOwnInfo,
		PermViewClients,
	},
	// Clients have no authenticated session and therefore no grants.
	RoleClient: {},
}

// grantIndex is rolePermissions compiled into a lookup table at startup.
var grantIndex = buildGrantIndex()

func buildGrantIndex() map[Role]map[Permission]bool {
	index := make(map[Role]map[Permission]bool, len(rolePermissions))
	for role, perms := range rolePermissions {
		set := make(map[Permission]bool, len(perms))
		for _, p := range perms {
			set[p] = true
		}
		index[role] = set
	}
	return index
}

// HasPermission reports whether the given role may perform the given action.
// The role string is normalized before evaluation; unknown roles are denied
// every permission.
func HasPermission(role string, p Permission) bool {
	r := Normalize(role)
	if r == RoleAdmin {
		return true
	}
	return grantIndex[r][p]
}

var permissionDescriptions = map[Permission]string{
	PermManageUsers:          "Manage user accounts",
	PermManageAllClients:     "Manage all client households",
	PermManageAgencies:       "Manage referring agencies",
	PermManageAllVolunteers:  "Manage all volunteers",
	PermManageAllInventory:   "Manage all inventory",
	PermManageAllOrders:      "Manage all work orders",
	PermViewAllReports:       "View all reports",
	PermManageSystemSettings: "Manage system settings",
	PermViewClients:          "View client households",
	PermEditClients:          "Edit client households",
	PermAddOrders:            "Add work orders",
	PermEditOrders:           "Edit work orders",
	PermViewInventory:        "View inventory",
	PermEditInventory:        "Edit inventory",
	PermViewOwnInfo:          "View own information",
	PermEditOwnInfo:          "Edit own information",
}

var permissionNames = map[Permission]string{
	PermManageUsers:          "manage-users",
	PermManageAllClients:     "manage-all-clients",
	PermManageAgencies:       "manage-agencies",
	PermManageAllVolunteers:  "manage-all-volunteers",
	PermManageAllInventory:   "manage-all-inventory",
	PermManageAllOrders:      "manage-all-orders",
	PermViewAllReports:       "view-all-reports",
	PermManageSystemSettings: "manage-system-settings",
	PermViewClients:          "view-clients",
	PermEditClients:          "edit-clients",
	PermAddOrders:            "add-orders",
	PermEditOrders:           "edit-orders",
	PermViewInventory:        "view-inventory",
	PermEditInventory:        "edit-inventory",
	PermViewOwnInfo:          "view-own-info",
	PermEditOwnInfo:          "edit-own-info",
}

// String returns the stable identifier for a permission, e.g. "edit-orders".
func (p Permission) String() string {
	if name, ok := permissionNames[p]; ok {
		return name
	}
	return "unknown"
}

// Description returns a human string for a permission. Out-of-range values
// yield a sentinel rather than failing.
func (p Permission) Description() string {
	if desc, ok := permissionDescriptions[p]; ok {
		return desc
	}
	return "Unknown Permission"
}

// ParsePermission resolves an identifier like "edit-orders" back to its
// Permission value. Used by the CLI.
func ParsePermission(name string) (Permission, bool) {
	for p, n := range permissionNames {
		if n == name {
			return p, true
		}
	}
	return 0, false
}
