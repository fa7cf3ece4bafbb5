package repository

import (
	"context"
	"time"

	"calapan-rental-backend/internal/domain"
)

// TxStore exposes every repository plus transactional execution. ExecTx hands
// fn a store whose repositories share one database transaction; services use
// it to make guard-check-then-write sequences atomic.
type TxStore interface {
	Vehicles() VehicleRepository
	Rentals() RentalRepository
	Customers() CustomerRepository
	Users() UserRepository
	Notifications() NotificationRepository
	ExecTx(ctx context.Context, fn func(TxStore) error) error
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	// GetByIDForUpdate reads the vehicle under a row lock. Only meaningful
	// inside Store.ExecTx; the lock serializes concurrent lifecycle
	// operations on the same vehicle.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error
	List(ctx context.Context, status domain.VehicleStatus, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type RentalRepository interface {
	Create(ctx context.Context, r *domain.Rental) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	Update(ctx context.Context, r *domain.Rental) error
	// ListByVehicleAndStatuses returns the vehicle's reservations in any of
	// the given statuses ordered by creation time, oldest first. excludeID
	// removes the reservation under test from the obstacle set (0 excludes
	// nothing).
	ListByVehicleAndStatuses(ctx context.Context, vehicleID int32, statuses []domain.RentalStatus, excludeID int32) ([]domain.Rental, error)
	List(ctx context.Context, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
	ListByCustomer(ctx context.Context, customerID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
	// ListActiveDueBetween returns Active rentals whose scheduled return
	// falls inside [from, to). Used by the reminder job.
	ListActiveDueBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error)
	// ListActiveOverdue returns Active rentals whose scheduled return is
	// before asOf. Used by the overdue-notice job.
	ListActiveOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByUserID(ctx context.Context, userID int32) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	ListAdmins(ctx context.Context) ([]domain.User, error)
	SetLocationTracking(ctx context.Context, userID int32, enabled bool) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
