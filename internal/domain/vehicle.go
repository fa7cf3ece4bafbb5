package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

// Vehicle is a fleet unit offered for rent. Status is a derived cache kept in
// sync by the rental lifecycle; availability for a date range is always
// answered from the reservations table, never from this field alone.
type Vehicle struct {
	ID               int32         `json:"id"`
	Brand            string        `json:"brand"`
	Model            string        `json:"model"`
	Year             int32         `json:"year"`
	Color            string        `json:"color"`
	PlateNumber      string        `json:"plate_number"`
	Transmission     string        `json:"transmission"` // Manual or Automatic
	SeatingCapacity  int32         `json:"seating_capacity"`
	GasType          string        `json:"gas_type"` // Gasoline, Diesel, Electric, Hybrid
	DailyRateCents   int64         `json:"daily_rate_cents"`
	CodingDay        string        `json:"coding_day,omitempty"` // weekday name, empty when the unit has no coding restriction
	Status           VehicleStatus `json:"status"`
	ImageURL         string        `json:"image_url,omitempty"`
	Description      string        `json:"description,omitempty"`
	CreatedOn        time.Time     `json:"created_on"`
	UpdatedOn        time.Time     `json:"updated_on"`
}

// Description line shown in notifications and emails, e.g. "Toyota Vios (ABC-1234)".
func (v *Vehicle) DisplayName() string {
	return v.Brand + " " + v.Model + " (" + v.PlateNumber + ")"
}
