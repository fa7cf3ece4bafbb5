package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/logger"
	"calapan-rental-backend/internal/pricing"
	"calapan-rental-backend/internal/repository"
	"calapan-rental-backend/internal/security"
)

// ErrUnauthorized is returned when the principal's role does not permit the
// operation.
var ErrUnauthorized = errors.New("unauthorized")

type rentalService struct {
	store    repository.TxStore
	policy   *AvailabilityPolicy
	pricer   *pricing.Engine
	notifier Notifier
	emailSvc EmailService
	now      Clock
}

func NewRentalService(
	store repository.TxStore,
	policy *AvailabilityPolicy,
	pricer *pricing.Engine,
	notifier Notifier,
	emailSvc EmailService,
	clock Clock,
) RentalService {
	if clock == nil {
		clock = time.Now
	}
	return &rentalService{
		store:    store,
		policy:   policy,
		pricer:   pricer,
		notifier: notifier,
		emailSvc: emailSvc,
		now:      clock,
	}
}

// CreateRentalRequest validates and prices a customer's rental request and
// persists it as Pending. The vehicle's status is left untouched: a vehicle
// stays bookable by other pending requests until one of them is approved.
func (s *rentalService) CreateRentalRequest(ctx context.Context, p security.Principal, input CreateRentalInput) (*domain.Rental, error) {
	if !p.IsCustomer() || p.CustomerID == 0 {
		return nil, ErrUnauthorized
	}

	now := s.now()
	if !input.ReturnDate.After(input.RentalDate) {
		return nil, &domain.ValidationError{Field: "return_date", Reason: "return date must be after pick-up date"}
	}
	if input.RentalDate.Before(now) && !sameCalendarDay(input.RentalDate, now) {
		return nil, &domain.ValidationError{Field: "rental_date", Reason: "pick-up date cannot be in the past"}
	}
	if !input.GpsConsent {
		return nil, &domain.ValidationError{Field: "gps_consent", Reason: "GPS tracking consent is required to rent a vehicle"}
	}
	if input.GovernmentIDPath == "" {
		return nil, &domain.ValidationError{Field: "government_id", Reason: "a government ID is required"}
	}
	if input.PaymentMethod.ReceiptRequired() && input.PaymentReceiptPath == "" {
		return nil, &domain.ValidationError{Field: "payment_receipt", Reason: fmt.Sprintf("a payment receipt is required for %s", input.PaymentMethod)}
	}

	var rental *domain.Rental
	err := s.store.ExecTx(ctx, func(tx repository.TxStore) error {
		// Lock the vehicle row so concurrent requests against the same
		// vehicle serialize around the conflict check.
		vehicle, err := tx.Vehicles().GetByIDForUpdate(ctx, input.VehicleID)
		if err != nil {
			return err
		}

		if err := s.policy.CheckCodingRestriction(vehicle, input.RentalDate, input.ReturnDate, now); err != nil {
			return err
		}

		detector := NewConflictDetector(tx.Rentals())
		blocking, err := detector.FindConflict(ctx, vehicle.ID, input.RentalDate, input.ReturnDate, 0, CreationObstacles)
		if err != nil {
			return err
		}
		if blocking != nil {
			return &domain.ConflictError{VehicleID: vehicle.ID, Blocking: blocking}
		}

		cost := s.pricer.RentalCostCents(vehicle.DailyRateCents, input.RentalDate, input.ReturnDate)
		deposit := s.pricer.SecurityDepositCents()
		consentDate := now

		rental = &domain.Rental{
			VehicleID:            vehicle.ID,
			CustomerID:           p.CustomerID,
			RentalDate:           input.RentalDate,
			ReturnDate:           input.ReturnDate,
			RentalCostCents:      cost,
			SecurityDepositCents: deposit,
			TotalAmountCents:     cost + deposit,
			PaymentMethod:        input.PaymentMethod,
			Destination:          input.Destination,
			GovernmentIDPath:     input.GovernmentIDPath,
			PaymentReceiptPath:   input.PaymentReceiptPath,
			GpsConsent:           true,
			GpsConsentDate:       &consentDate,
			Status:               domain.RentalStatusPending,
		}
		return tx.Rentals().Create(ctx, rental)
	})
	if err != nil {
		return nil, err
	}

	s.notifyAdminsOfRequest(ctx, rental)
	s.enableLocationTracking(ctx, p.CustomerID)

	return rental, nil
}

// ApproveRental moves a Pending rental to Active. The conflict check is
// re-run against Active reservations only: another overlapping request may
// have been approved since this one was created.
func (s *rentalService) ApproveRental(ctx context.Context, p security.Principal, rentalID int32) (*domain.Rental, error) {
	if !p.IsAdmin() {
		return nil, ErrUnauthorized
	}

	var rental *domain.Rental
	var vehicle *domain.Vehicle
	err := s.store.ExecTx(ctx, func(tx repository.TxStore) error {
		rt, err := tx.Rentals().GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		v, err := tx.Vehicles().GetByIDForUpdate(ctx, rt.VehicleID)
		if err != nil {
			return err
		}
		// Re-read under the vehicle lock; a concurrent operation may have
		// committed between the first read and the lock.
		rt, err = tx.Rentals().GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		if rt.Status != domain.RentalStatusPending {
			return &domain.StateTransitionError{Op: "approve", Status: rt.Status}
		}

		detector := NewConflictDetector(tx.Rentals())
		blocking, err := detector.FindConflict(ctx, rt.VehicleID, rt.RentalDate, rt.ReturnDate, rt.ID, ApprovalObstacles)
		if err != nil {
			return err
		}
		if blocking != nil {
			return &domain.ConflictError{VehicleID: rt.VehicleID, Blocking: blocking}
		}

		rt.Status = domain.RentalStatusActive
		if err := tx.Rentals().Update(ctx, rt); err != nil {
			return err
		}
		if err := tx.Vehicles().UpdateStatus(ctx, rt.VehicleID, domain.VehicleStatusRented); err != nil {
			return err
		}
		rental, vehicle = rt, v
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Approval is final once persisted; delivery failures below are logged
	// and swallowed.
	s.notifyCustomer(ctx, rental, "Rental Approved",
		fmt.Sprintf("Your rental of %s from %s to %s has been approved. Total due: %s.",
			vehicle.DisplayName(), formatDateTime(rental.RentalDate), formatDateTime(rental.ReturnDate), formatCents(rental.TotalAmountCents)),
		domain.SeveritySuccess)
	s.sendApprovalEmail(ctx, rental, vehicle)

	return rental, nil
}

// RejectRental moves a Pending rental to Rejected. The reason, when given,
// is appended to the audit notes; the vehicle was never marked Rented by the
// pending request, so its status is left alone.
func (s *rentalService) RejectRental(ctx context.Context, p security.Principal, rentalID int32, reason string) (*domain.Rental, error) {
	if !p.IsAdmin() {
		return nil, ErrUnauthorized
	}

	var rental *domain.Rental
	var vehicle *domain.Vehicle
	err := s.store.ExecTx(ctx, func(tx repository.TxStore) error {
		rt, err := tx.Rentals().GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		v, err := tx.Vehicles().GetByIDForUpdate(ctx, rt.VehicleID)
		if err != nil {
			return err
		}
		rt, err = tx.Rentals().GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		if rt.Status != domain.RentalStatusPending {
			return &domain.StateTransitionError{Op: "reject", Status: rt.Status}
		}

		entry := "Rejected by admin"
		if reason != "" {
			entry = "Rejected by admin: " + reason
		}
		rt.Notes = appendAuditNote(rt.Notes, s.now(), entry)
		rt.Status = domain.RentalStatusRejected
		if err := tx.Rentals().Update(ctx, rt); err != nil {
			return err
		}
		rental, vehicle = rt, v
		return nil
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your rental request for %s was rejected. Please contact support for details.", vehicle.DisplayName())
	if reason != "" {
		message = fmt.Sprintf("Your rental request for %s was rejected. Reason: %s", vehicle.DisplayName(), reason)
	}
	s.notifyCustomer(ctx, rental, "Rental Rejected", message, domain.SeverityWarning)
	s.sendRejectionEmail(ctx, rental, vehicle, reason)

	return rental, nil
}

// ReturnRental completes an Active rental: stamps the actual return time,
// adds any late fee to the total, records the deposit disposition and frees
// the vehicle. Only one Active rental per vehicle can exist, so the vehicle
// goes back to Available unconditionally.
func (s *rentalService) ReturnRental(ctx context.Context, p security.Principal, rentalID int32, disposition domain.DepositStatus, notes string) (*domain.Rental, error) {
	if !p.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if disposition != domain.DepositStatusRefunded && disposition != domain.DepositStatusForfeited {
		return nil, &domain.ValidationError{Field: "deposit_status", Reason: "deposit disposition must be REFUNDED or FORFEITED"}
	}

	var rental *domain.Rental
	var vehicle *domain.Vehicle
	err := s.store.ExecTx(ctx, func(tx repository.TxStore) error {
		rt, err := tx.Rentals().GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		v, err := tx.Vehicles().GetByIDForUpdate(ctx, rt.VehicleID)
		if err != nil {
			return err
		}
		rt, err = tx.Rentals().GetByID(ctx, rentalID)
		if err != nil {
			return err
		}
		if rt.Status != domain.RentalStatusActive {
			return &domain.StateTransitionError{Op: "return", Status: rt.Status}
		}

		now := s.now()
		rt.ActualReturnDate = &now
		rt.Status = domain.RentalStatusCompleted

		// Late fee is computed against the scheduled return date, never a
		// caller-supplied value, and added on top of the existing total.
		if fee := s.pricer.LateFeeCents(v.DailyRateCents, rt.ReturnDate, now); fee != nil {
			rt.LateFeeCents = fee
			rt.TotalAmountCents += *fee
		}

		rt.DepositStatus = &disposition
		depositDate := now
		rt.DepositReturnDate = &depositDate

		if notes != "" {
			rt.Notes = appendAuditNote(rt.Notes, now, "Returned: "+notes)
		}

		if err := tx.Rentals().Update(ctx, rt); err != nil {
			return err
		}
		if err := tx.Vehicles().UpdateStatus(ctx, rt.VehicleID, domain.VehicleStatusAvailable); err != nil {
			return err
		}
		rental, vehicle = rt, v
		return nil
	})
	if err != nil {
		return nil, err
	}

	title, message, severity := returnNotification(rental, vehicle)
	s.notifyCustomer(ctx, rental, title, message, severity)
	s.sendReturnEmail(ctx, rental, vehicle)

	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, p security.Principal, rentalID int32) (*domain.Rental, error) {
	rt, err := s.store.Rentals().GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() && rt.CustomerID != p.CustomerID {
		return nil, ErrUnauthorized
	}
	return rt, nil
}

func (s *rentalService) ListRentals(ctx context.Context, p security.Principal, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	if !p.IsAdmin() {
		return nil, 0, ErrUnauthorized
	}
	return s.store.Rentals().List(ctx, status, page, pageSize)
}

func (s *rentalService) ListMyRentals(ctx context.Context, p security.Principal, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	if !p.IsCustomer() || p.CustomerID == 0 {
		return nil, 0, ErrUnauthorized
	}
	return s.store.Rentals().ListByCustomer(ctx, p.CustomerID, status, page, pageSize)
}

// returnNotification picks one of the four message variants:
// on-time/late crossed with refunded/forfeited deposit.
func returnNotification(rt *domain.Rental, v *domain.Vehicle) (title, message string, severity domain.NotificationSeverity) {
	late := rt.IsLate()
	refunded := rt.DepositStatus != nil && *rt.DepositStatus == domain.DepositStatusRefunded

	switch {
	case !late && refunded:
		return "Vehicle Returned",
			fmt.Sprintf("Thank you for returning %s on time. Your security deposit of %s will be refunded.",
				v.DisplayName(), formatCents(rt.SecurityDepositCents)),
			domain.SeveritySuccess
	case !late && !refunded:
		return "Vehicle Returned",
			fmt.Sprintf("%s was returned on time. Your security deposit of %s has been forfeited; please contact support for details.",
				v.DisplayName(), formatCents(rt.SecurityDepositCents)),
			domain.SeverityWarning
	case late && refunded:
		var fee int64
		if rt.LateFeeCents != nil {
			fee = *rt.LateFeeCents
		}
		return "Vehicle Returned Late",
			fmt.Sprintf("%s was returned after the scheduled date. A late fee of %s was added, bringing the total to %s. Your security deposit of %s will be refunded.",
				v.DisplayName(), formatCents(fee), formatCents(rt.TotalAmountCents), formatCents(rt.SecurityDepositCents)),
			domain.SeverityWarning
	default:
		var fee int64
		if rt.LateFeeCents != nil {
			fee = *rt.LateFeeCents
		}
		return "Vehicle Returned Late",
			fmt.Sprintf("%s was returned after the scheduled date. A late fee of %s was added, bringing the total to %s, and your security deposit of %s has been forfeited.",
				v.DisplayName(), formatCents(fee), formatCents(rt.TotalAmountCents), formatCents(rt.SecurityDepositCents)),
			domain.SeverityWarning
	}
}

func (s *rentalService) notifyAdminsOfRequest(ctx context.Context, rt *domain.Rental) {
	admins, err := s.store.Users().ListAdmins(ctx)
	if err != nil {
		logger.Error("failed to list admins for rental notification", "rental_id", rt.ID, "error", err)
		return
	}
	actionURL := fmt.Sprintf("/admin/rentals/%d", rt.ID)
	message := fmt.Sprintf("Customer %d requested vehicle %d from %s to %s.",
		rt.CustomerID, rt.VehicleID, formatDateTime(rt.RentalDate), formatDateTime(rt.ReturnDate))
	for _, admin := range admins {
		if err := s.notifier.Notify(ctx, admin.ID, "New Rental Request", message, domain.SeverityInfo, actionURL); err != nil {
			logger.Error("failed to notify admin of rental request", "admin_id", admin.ID, "rental_id", rt.ID, "error", err)
		}
	}
}

// enableLocationTracking flips the customer's linked account to tracked,
// a side effect of the granted GPS consent. Idempotent: already-enabled
// accounts are left alone.
func (s *rentalService) enableLocationTracking(ctx context.Context, customerID int32) {
	customer, err := s.store.Customers().GetByID(ctx, customerID)
	if err != nil {
		logger.Error("failed to load customer for location tracking", "customer_id", customerID, "error", err)
		return
	}
	user, err := s.store.Users().GetByID(ctx, customer.UserID)
	if err != nil {
		logger.Error("failed to load user for location tracking", "user_id", customer.UserID, "error", err)
		return
	}
	if user.LocationTrackingEnabled {
		return
	}
	if err := s.store.Users().SetLocationTracking(ctx, user.ID, true); err != nil {
		logger.Error("failed to enable location tracking", "user_id", user.ID, "error", err)
	}
}

func (s *rentalService) notifyCustomer(ctx context.Context, rt *domain.Rental, title, message string, severity domain.NotificationSeverity) {
	customer, err := s.store.Customers().GetByID(ctx, rt.CustomerID)
	if err != nil {
		logger.Error("failed to load customer for notification", "customer_id", rt.CustomerID, "rental_id", rt.ID, "error", err)
		return
	}
	actionURL := fmt.Sprintf("/my/rentals/%d", rt.ID)
	if err := s.notifier.Notify(ctx, customer.UserID, title, message, severity, actionURL); err != nil {
		logger.Error("failed to notify customer", "user_id", customer.UserID, "rental_id", rt.ID, "error", err)
	}
}

func (s *rentalService) sendApprovalEmail(ctx context.Context, rt *domain.Rental, v *domain.Vehicle) {
	customer, err := s.store.Customers().GetByID(ctx, rt.CustomerID)
	if err != nil {
		logger.Error("failed to load customer for approval email", "customer_id", rt.CustomerID, "error", err)
		return
	}
	err = s.emailSvc.SendRentalApprovalEmail(ctx, customer.Email, customer.FullName(), v.DisplayName(),
		rt.RentalDate, rt.ReturnDate, rt.TotalAmountCents, rt.RentalCostCents, rt.SecurityDepositCents)
	if err != nil {
		logger.Error("failed to send approval email", "rental_id", rt.ID, "error", err)
	}
}

func (s *rentalService) sendRejectionEmail(ctx context.Context, rt *domain.Rental, v *domain.Vehicle, reason string) {
	customer, err := s.store.Customers().GetByID(ctx, rt.CustomerID)
	if err != nil {
		logger.Error("failed to load customer for rejection email", "customer_id", rt.CustomerID, "error", err)
		return
	}
	if err := s.emailSvc.SendRentalRejectionEmail(ctx, customer.Email, customer.FullName(), v.DisplayName(), reason); err != nil {
		logger.Error("failed to send rejection email", "rental_id", rt.ID, "error", err)
	}
}

func (s *rentalService) sendReturnEmail(ctx context.Context, rt *domain.Rental, v *domain.Vehicle) {
	customer, err := s.store.Customers().GetByID(ctx, rt.CustomerID)
	if err != nil {
		logger.Error("failed to load customer for return email", "customer_id", rt.CustomerID, "error", err)
		return
	}
	var fee int64
	if rt.LateFeeCents != nil {
		fee = *rt.LateFeeCents
	}
	if err := s.emailSvc.SendRentalReturnEmail(ctx, customer.Email, customer.FullName(), v.DisplayName(), fee, *rt.DepositStatus); err != nil {
		logger.Error("failed to send return email", "rental_id", rt.ID, "error", err)
	}
}

// appendAuditNote adds a timestamped line to the append-only notes field,
// never overwriting prior entries.
func appendAuditNote(existing string, at time.Time, entry string) string {
	line := fmt.Sprintf("[%s] %s", at.Format("2006-01-02 15:04"), entry)
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}

// formatCents renders integer centavos as a currency string without going
// through floating point.
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sPHP %d.%02d", sign, cents/100, cents%100)
}

func formatDateTime(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}
