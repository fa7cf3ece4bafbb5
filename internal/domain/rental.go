package domain

import "time"

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "PENDING"
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusRejected  RentalStatus = "REJECTED"
)

// IsTerminal reports whether no further transitions are permitted.
func (s RentalStatus) IsTerminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusRejected
}

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodGcash        PaymentMethod = "GCASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// ReceiptRequired reports whether this payment method needs an uploaded
// payment receipt at request time.
func (m PaymentMethod) ReceiptRequired() bool {
	return m == PaymentMethodGcash || m == PaymentMethodBankTransfer
}

type DepositStatus string

const (
	DepositStatusRefunded  DepositStatus = "REFUNDED"
	DepositStatusForfeited DepositStatus = "FORFEITED"
)

// Rental is a reservation of one vehicle for a half-open time range
// [RentalDate, ReturnDate). Monetary fields are integer centavos.
//
// Money snapshot rules: SecurityDepositCents is fixed at creation and never
// recalculated; LateFeeCents is set at most once, at completion, and is added
// to TotalAmountCents at that point. The invariant
// TotalAmountCents == RentalCostCents + SecurityDepositCents + (LateFeeCents or 0)
// holds in every state.
type Rental struct {
	ID                 int32      `json:"id"`
	VehicleID          int32      `json:"vehicle_id"`
	CustomerID         int32      `json:"customer_id"`
	RentalDate         time.Time  `json:"rental_date"`
	ReturnDate         time.Time  `json:"return_date"`
	ActualReturnDate   *time.Time `json:"actual_return_date,omitempty"`

	RentalCostCents      int64  `json:"rental_cost_cents"`
	SecurityDepositCents int64  `json:"security_deposit_cents"`
	LateFeeCents         *int64 `json:"late_fee_cents,omitempty"`
	TotalAmountCents     int64  `json:"total_amount_cents"`

	PaymentMethod      PaymentMethod `json:"payment_method"`
	Destination        string        `json:"destination"`
	GovernmentIDPath   string        `json:"government_id_path"`
	PaymentReceiptPath string        `json:"payment_receipt_path,omitempty"`

	GpsConsent     bool       `json:"gps_consent"`
	GpsConsentDate *time.Time `json:"gps_consent_date,omitempty"`

	DepositStatus     *DepositStatus `json:"deposit_status,omitempty"`
	DepositReturnDate *time.Time     `json:"deposit_return_date,omitempty"`

	// Notes is an append-only audit trail of admin actions.
	Notes string `json:"notes,omitempty"`

	Status    RentalStatus `json:"status"`
	CreatedOn time.Time    `json:"created_on"`
	UpdatedOn time.Time    `json:"updated_on"`
}

// Overlaps reports whether the reservation's [RentalDate, ReturnDate) range
// intersects [start, end).
func (r *Rental) Overlaps(start, end time.Time) bool {
	return r.RentalDate.Before(end) && start.Before(r.ReturnDate)
}

// IsLate reports whether the vehicle came back after its scheduled return.
func (r *Rental) IsLate() bool {
	return r.ActualReturnDate != nil && r.ActualReturnDate.After(r.ReturnDate)
}
