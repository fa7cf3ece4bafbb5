package service

import (
	"context"
	"time"

	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/security"
)

// Clock supplies "now" so date-sensitive rules are testable. A nil Clock
// passed to a constructor falls back to time.Now.
type Clock func() time.Time

// CreateRentalInput carries a customer's rental request. Document paths are
// already validated and stored by the upload layer.
type CreateRentalInput struct {
	VehicleID          int32
	RentalDate         time.Time
	ReturnDate         time.Time
	PaymentMethod      domain.PaymentMethod
	Destination        string
	GpsConsent         bool
	GovernmentIDPath   string
	PaymentReceiptPath string
}

type RentalService interface {
	CreateRentalRequest(ctx context.Context, p security.Principal, input CreateRentalInput) (*domain.Rental, error)
	ApproveRental(ctx context.Context, p security.Principal, rentalID int32) (*domain.Rental, error)
	RejectRental(ctx context.Context, p security.Principal, rentalID int32, reason string) (*domain.Rental, error)
	ReturnRental(ctx context.Context, p security.Principal, rentalID int32, disposition domain.DepositStatus, notes string) (*domain.Rental, error)
	GetRental(ctx context.Context, p security.Principal, rentalID int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, p security.Principal, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
	ListMyRentals(ctx context.Context, p security.Principal, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, p security.Principal, v *domain.Vehicle) error
	UpdateVehicle(ctx context.Context, p security.Principal, v *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, status domain.VehicleStatus, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

// Notifier is the fire-and-forget notification sink. The lifecycle logs and
// swallows its errors; a failed delivery never reverses a transition.
type Notifier interface {
	Notify(ctx context.Context, userID int32, title, message string, severity domain.NotificationSeverity, actionURL string) error
}

type NotificationService interface {
	Notifier
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// EmailService delivers best-effort customer emails for lifecycle
// transitions.
type EmailService interface {
	SendRentalApprovalEmail(ctx context.Context, email, name, vehicle string, pickup, returnDate time.Time, totalCents, costCents, depositCents int64) error
	SendRentalRejectionEmail(ctx context.Context, email, name, vehicle, reason string) error
	SendRentalReturnEmail(ctx context.Context, email, name, vehicle string, lateFeeCents int64, disposition domain.DepositStatus) error
}
