package domain

import "time"

// Customer is the renting party. A customer is linked to a User account via
// UserID; notifications and the GPS tracking toggle target that account.
type Customer struct {
	ID            int32     `json:"id"`
	UserID        int32     `json:"user_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"license_number"`
	Address       string    `json:"address,omitempty"`
	CreatedOn     time.Time `json:"created_on"`
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
