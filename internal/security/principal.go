package security

import "calapan-rental-backend/internal/domain"

// Principal is the authenticated caller of a lifecycle operation. It is
// always passed explicitly, never read from ambient state.
type Principal struct {
	UserID     int32
	CustomerID int32 // zero for admin accounts
	Role       domain.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == domain.RoleAdmin
}

func (p Principal) IsCustomer() bool {
	return p.Role == domain.RoleCustomer
}
