package postgres

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"calapan-rental-backend/internal/domain"
)

var rentalTestColumns = []string{
	"id", "vehicle_id", "customer_id", "rental_date", "return_date", "actual_return_date",
	"rental_cost_cents", "security_deposit_cents", "late_fee_cents", "total_amount_cents",
	"payment_method", "destination", "government_id_path", "payment_receipt_path",
	"gps_consent", "gps_consent_date", "deposit_status", "deposit_return_date",
	"notes", "status", "created_on", "updated_on",
}

func rentalRow(id int32, status domain.RentalStatus) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, int32(7), int32(5), now, now.Add(48 * time.Hour), nil,
		int64(300000), int64(200000), nil, int64(500000),
		"CASH", "Puerto Galera", "government_ids/id.png", nil,
		true, now, nil, nil,
		nil, string(status), now, now,
	}
}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rental := &domain.Rental{
			VehicleID:            7,
			CustomerID:           5,
			RentalDate:           now.Add(24 * time.Hour),
			ReturnDate:           now.Add(72 * time.Hour),
			RentalCostCents:      300000,
			SecurityDepositCents: 200000,
			TotalAmountCents:     500000,
			PaymentMethod:        domain.PaymentMethodCash,
			Destination:          "Puerto Galera",
			GovernmentIDPath:     "government_ids/id.png",
			GpsConsent:           true,
			GpsConsentDate:       &now,
			Status:               domain.RentalStatusPending,
		}

		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(rental.VehicleID, rental.CustomerID, rental.RentalDate, rental.ReturnDate,
				rental.RentalCostCents, rental.SecurityDepositCents, rental.TotalAmountCents,
				rental.PaymentMethod, rental.Destination, rental.GovernmentIDPath, nil,
				rental.GpsConsent, sqlmock.AnyArg(), nil, rental.Status,
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_on"}).AddRow(1, now))

		err := repo.Create(ctx, rental)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), rental.ID)
	})
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalTestColumns).AddRow(rentalRow(1, domain.RentalStatusPending)...)

		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		rental, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		if assert.NotNil(t, rental) {
			assert.Equal(t, int32(1), rental.ID)
			assert.Equal(t, domain.RentalStatusPending, rental.Status)
			assert.Nil(t, rental.LateFeeCents)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int32(404)).
			WillReturnRows(sqlmock.NewRows(rentalTestColumns))

		rental, err := repo.GetByID(ctx, 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, rental)
	})
}

func TestRentalRepository_ListByVehicleAndStatuses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("OrderedOldestFirst", func(t *testing.T) {
		rows := sqlmock.NewRows(rentalTestColumns).
			AddRow(rentalRow(1, domain.RentalStatusPending)...).
			AddRow(rentalRow(2, domain.RentalStatusActive)...)

		mock.ExpectQuery(`SELECT (.+) FROM rentals WHERE vehicle_id = \$1 AND status = ANY\(\$2\) AND id <> \$3 ORDER BY created_on ASC`).
			WithArgs(int32(7), sqlmock.AnyArg(), int32(0)).
			WillReturnRows(rows)

		rentals, err := repo.ListByVehicleAndStatuses(ctx, 7,
			[]domain.RentalStatus{domain.RentalStatusPending, domain.RentalStatusActive}, 0)
		assert.NoError(t, err)
		if assert.Len(t, rentals, 2) {
			assert.Equal(t, int32(1), rentals[0].ID)
			assert.Equal(t, int32(2), rentals[1].ID)
		}
	})
}

func TestRentalRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("FilteredByStatusWithCount", func(t *testing.T) {
		mock.ExpectQuery(`SELECT count\(\*\) FROM rentals WHERE status = \$1`).
			WithArgs(domain.RentalStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows(rentalTestColumns).AddRow(rentalRow(1, domain.RentalStatusPending)...)
		mock.ExpectQuery(`SELECT (.+) FROM rentals WHERE status = \$1 ORDER BY created_on DESC LIMIT \$2 OFFSET \$3`).
			WithArgs(domain.RentalStatusPending, int32(20), int32(0)).
			WillReturnRows(rows)

		rentals, total, err := repo.List(ctx, domain.RentalStatusPending, 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), total)
		assert.Len(t, rentals, 1)
	})
}

func TestRentalRepository_ListActiveOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	asOf := time.Now()
	rows := sqlmock.NewRows(rentalTestColumns).AddRow(rentalRow(3, domain.RentalStatusActive)...)
	mock.ExpectQuery(`SELECT (.+) FROM rentals WHERE status = \$1 AND return_date < \$2 ORDER BY return_date ASC`).
		WithArgs(domain.RentalStatusActive, asOf).
		WillReturnRows(rows)

	rentals, err := repo.ListActiveOverdue(ctx, asOf)
	assert.NoError(t, err)
	assert.Len(t, rentals, 1)
}
