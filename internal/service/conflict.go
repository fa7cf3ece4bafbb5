package service

import (
	"context"
	"time"

	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/repository"
)

// Obstacle tiers for conflict detection. At creation time any non-terminal
// reservation blocks; at approval time only Active ones do, so two Pending
// requests may overlap until one of them is approved.
var (
	CreationObstacles = []domain.RentalStatus{domain.RentalStatusPending, domain.RentalStatusActive}
	ApprovalObstacles = []domain.RentalStatus{domain.RentalStatusActive}
)

// ConflictDetector checks a candidate date range against a vehicle's
// existing reservations. Construct it over a transaction-bound repository to
// make the check part of an atomic lifecycle step.
type ConflictDetector struct {
	rentals repository.RentalRepository
}

func NewConflictDetector(rentals repository.RentalRepository) *ConflictDetector {
	return &ConflictDetector{rentals: rentals}
}

// FindConflict returns the earliest-created reservation in one of the
// obstacle statuses whose [start, end) range overlaps the candidate range,
// or nil when the range is free. excludeID removes the reservation under
// test from the obstacle set (0 excludes nothing).
func (d *ConflictDetector) FindConflict(ctx context.Context, vehicleID int32, start, end time.Time, excludeID int32, obstacles []domain.RentalStatus) (*domain.Rental, error) {
	reservations, err := d.rentals.ListByVehicleAndStatuses(ctx, vehicleID, obstacles, excludeID)
	if err != nil {
		return nil, err
	}
	// Ordered oldest-first by the repository, so the first hit is the
	// earliest-created blocker.
	for i := range reservations {
		if reservations[i].Overlaps(start, end) {
			return &reservations[i], nil
		}
	}
	return nil, nil
}

// HasConflict is FindConflict reduced to a boolean.
func (d *ConflictDetector) HasConflict(ctx context.Context, vehicleID int32, start, end time.Time, excludeID int32, obstacles []domain.RentalStatus) (bool, error) {
	blocking, err := d.FindConflict(ctx, vehicleID, start, end, excludeID, obstacles)
	if err != nil {
		return false, err
	}
	return blocking != nil, nil
}
