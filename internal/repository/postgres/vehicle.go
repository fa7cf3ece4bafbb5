package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/repository"
)

type vehicleRepository struct {
	db DBTX
}

func NewVehicleRepository(db DBTX) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `id, brand, model, year, color, plate_number, transmission, seating_capacity, gas_type, daily_rate_cents, coding_day, status, image_url, description, created_on, updated_on`

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (brand, model, year, color, plate_number, transmission, seating_capacity, gas_type, daily_rate_cents, coding_day, status, image_url, description, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		v.Brand, v.Model, v.Year, v.Color, v.PlateNumber, v.Transmission, v.SeatingCapacity, v.GasType,
		v.DailyRateCents, nullString(v.CodingDay), v.Status, nullString(v.ImageURL), nullString(v.Description),
		now, now,
	).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *vehicleRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET brand=$1, model=$2, year=$3, color=$4, plate_number=$5, transmission=$6, seating_capacity=$7, gas_type=$8, daily_rate_cents=$9, coding_day=$10, image_url=$11, description=$12, updated_on=$13 WHERE id=$14`
	_, err := r.db.ExecContext(ctx, query,
		v.Brand, v.Model, v.Year, v.Color, v.PlateNumber, v.Transmission, v.SeatingCapacity, v.GasType,
		v.DailyRateCents, nullString(v.CodingDay), nullString(v.ImageURL), nullString(v.Description),
		time.Now(), v.ID,
	)
	return err
}

// UpdateStatus is the only write path for the derived status cache.
func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, status domain.VehicleStatus, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	base := `FROM vehicles`
	args := []any{}
	if status != "" {
		base += ` WHERE status = $1`
		args = append(args, status)
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) `+base, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + vehicleColumns + ` ` + base
	if status != "" {
		query += ` ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	}
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, count, rows.Err()
}

func (r *vehicleRepository) scanOne(row *sql.Row) (*domain.Vehicle, error) {
	v, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	var codingDay, imageURL, description sql.NullString
	err := row.Scan(
		&v.ID, &v.Brand, &v.Model, &v.Year, &v.Color, &v.PlateNumber, &v.Transmission, &v.SeatingCapacity,
		&v.GasType, &v.DailyRateCents, &codingDay, &v.Status, &imageURL, &description, &v.CreatedOn, &v.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	v.CodingDay = codingDay.String
	v.ImageURL = imageURL.String
	v.Description = description.String
	return v, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
