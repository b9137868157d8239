// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin indicates full administrative access.
	RoleAdmin Role = "ADMIN"
	// RoleManager indicates catalog and inventory management access.
	RoleManager Role = "MANAGER"
	// RoleCustomer indicates a regular shopper. This is the default role.
	RoleCustomer Role = "CUSTOMER"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCustomer:
		return true
	default:
		return false
	}
}

// CanManageCatalog reports whether the role may create products or adjust stock.
func (r Role) CanManageCatalog() bool {
	return r == RoleAdmin || r == RoleManager
}
