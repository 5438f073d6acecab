package auth

import (
	"slices"
	"strings"
)

// Permission names a guarded back-office action.
type Permission string

const (
	ManageUsers     Permission = "manage_users"
	ManageProducts  Permission = "manage_products"
	ViewProducts    Permission = "view_products"
	ManageCustomers Permission = "manage_customers"
	ViewCustomers   Permission = "view_customers"
	ViewReports     Permission = "view_reports"
	ManageSettings  Permission = "manage_settings"
	ProcessSales    Permission = "process_sales"
	ProcessReturns  Permission = "process_returns"
	ManageInventory Permission = "manage_inventory"
	ViewAnalytics   Permission = "view_analytics"
)

// implies reports whether holding p grants q. A manage_X permission grants
// view_X.
func (p Permission) implies(q Permission) bool {
	noun, ok := strings.CutPrefix(string(q), "view_")
	return ok && string(p) == "manage_"+noun
}

// Role is a staff role with a default permission set.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleCashier  Role = "cashier"
	RoleEmployee Role = "employee"
)

// Roles lists every role in descending privilege order.
var Roles = []Role{RoleAdmin, RoleManager, RoleCashier, RoleEmployee}

var defaultPermissions = map[Role][]Permission{
	RoleAdmin: {
		ManageUsers, ManageProducts, ManageCustomers, ViewReports, ManageSettings,
		ProcessSales, ProcessReturns, ManageInventory, ViewAnalytics,
	},
	RoleManager: {
		ManageProducts, ManageCustomers, ViewReports, ProcessSales,
		ProcessReturns, ManageInventory, ViewAnalytics,
	},
	RoleCashier: {
		ViewProducts, ViewCustomers, ProcessSales, ProcessReturns,
	},
	RoleEmployee: {
		ViewProducts, ViewCustomers, ProcessSales,
	},
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := defaultPermissions[r]
	return ok
}

// Permissions returns a copy of the role's default permission set.
func (r Role) Permissions() []Permission {
	return slices.Clone(defaultPermissions[r])
}

// Allows reports whether the role's default set grants p.
func (r Role) Allows(p Permission) bool {
	return slices.ContainsFunc(defaultPermissions[r], func(have Permission) bool {
		return have == p || have.implies(p)
	})
}
