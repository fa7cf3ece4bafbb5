package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/repository"
)

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, vehicle_id, customer_id, rental_date, return_date, actual_return_date, rental_cost_cents, security_deposit_cents, late_fee_cents, total_amount_cents, payment_method, destination, government_id_path, payment_receipt_path, gps_consent, gps_consent_date, deposit_status, deposit_return_date, notes, status, created_on, updated_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (vehicle_id, customer_id, rental_date, return_date, rental_cost_cents, security_deposit_cents, total_amount_cents, payment_method, destination, government_id_path, payment_receipt_path, gps_consent, gps_consent_date, notes, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id, created_on`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		rt.VehicleID, rt.CustomerID, rt.RentalDate, rt.ReturnDate,
		rt.RentalCostCents, rt.SecurityDepositCents, rt.TotalAmountCents,
		rt.PaymentMethod, rt.Destination, rt.GovernmentIDPath, nullString(rt.PaymentReceiptPath),
		rt.GpsConsent, rt.GpsConsentDate, nullString(rt.Notes), rt.Status,
		now, now,
	).Scan(&rt.ID, &rt.CreatedOn)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET actual_return_date=$1, late_fee_cents=$2, total_amount_cents=$3, deposit_status=$4, deposit_return_date=$5, notes=$6, status=$7, updated_on=$8 WHERE id=$9`
	var depositStatus *string
	if rt.DepositStatus != nil {
		s := string(*rt.DepositStatus)
		depositStatus = &s
	}
	res, err := r.db.ExecContext(ctx, query,
		rt.ActualReturnDate, rt.LateFeeCents, rt.TotalAmountCents,
		depositStatus, rt.DepositReturnDate, nullString(rt.Notes), rt.Status,
		time.Now(), rt.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *rentalRepository) ListByVehicleAndStatuses(ctx context.Context, vehicleID int32, statuses []domain.RentalStatus, excludeID int32) ([]domain.Rental, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE vehicle_id = $1 AND status = ANY($2) AND id <> $3 ORDER BY created_on ASC`

	rows, err := r.db.QueryContext(ctx, query, vehicleID, pq.Array(names), excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func (r *rentalRepository) List(ctx context.Context, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	base := `FROM rentals`
	args := []any{}
	argIdx := 1
	if status != "" {
		base += ` WHERE status = $1`
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) `+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` ` + base + fmt.Sprintf(` ORDER BY created_on DESC LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rentals, err := collectRentals(rows)
	if err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	base := `FROM rentals WHERE customer_id = $1`
	args := []any{customerID}
	argIdx := 2
	if status != "" {
		base += ` AND status = $2`
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) `+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` ` + base + fmt.Sprintf(` ORDER BY created_on DESC LIMIT $%d OFFSET $%d`, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rentals, err := collectRentals(rows)
	if err != nil {
		return nil, 0, err
	}
	return rentals, count, nil
}

func (r *rentalRepository) ListActiveDueBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 AND return_date >= $2 AND return_date < $3 ORDER BY return_date ASC`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusActive, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func (r *rentalRepository) ListActiveOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 AND return_date < $2 ORDER BY return_date ASC`
	rows, err := r.db.QueryContext(ctx, query, domain.RentalStatusActive, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRentals(rows)
}

func collectRentals(rows *sql.Rows) ([]domain.Rental, error) {
	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func scanRental(row rowScanner) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var (
		actualReturn   sql.NullTime
		lateFee        sql.NullInt64
		receiptPath    sql.NullString
		gpsConsentDate sql.NullTime
		depositStatus  sql.NullString
		depositReturn  sql.NullTime
		notes          sql.NullString
	)
	err := row.Scan(
		&rt.ID, &rt.VehicleID, &rt.CustomerID, &rt.RentalDate, &rt.ReturnDate, &actualReturn,
		&rt.RentalCostCents, &rt.SecurityDepositCents, &lateFee, &rt.TotalAmountCents,
		&rt.PaymentMethod, &rt.Destination, &rt.GovernmentIDPath, &receiptPath,
		&rt.GpsConsent, &gpsConsentDate, &depositStatus, &depositReturn,
		&notes, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	if actualReturn.Valid {
		rt.ActualReturnDate = &actualReturn.Time
	}
	if lateFee.Valid {
		rt.LateFeeCents = &lateFee.Int64
	}
	rt.PaymentReceiptPath = receiptPath.String
	if gpsConsentDate.Valid {
		rt.GpsConsentDate = &gpsConsentDate.Time
	}
	if depositStatus.Valid {
		ds := domain.DepositStatus(depositStatus.String)
		rt.DepositStatus = &ds
	}
	if depositReturn.Valid {
		rt.DepositReturnDate = &depositReturn.Time
	}
	rt.Notes = notes.String
	return rt, nil
}
