package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// User is an authenticated account. Credentials and sessions are owned by the
// external auth system; this side only reads identity, role and the location
// tracking toggle.
type User struct {
	ID                      int32     `json:"id"`
	Username                string    `json:"username"`
	Email                   string    `json:"email"`
	Role                    Role      `json:"role"`
	LocationTrackingEnabled bool      `json:"location_tracking_enabled"`
	CreatedOn               time.Time `json:"created_on"`
}
