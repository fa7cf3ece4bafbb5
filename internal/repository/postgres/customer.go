package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/repository"
)

type customerRepository struct {
	db DBTX
}

func NewCustomerRepository(db DBTX) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, user_id, first_name, last_name, email, phone, license_number, address, created_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (user_id, first_name, last_name, email, phone, license_number, address, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		c.UserID, c.FirstName, c.LastName, c.Email, c.Phone, c.LicenseNumber, nullString(c.Address), time.Now(),
	).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(r.db.QueryRowContext(ctx, query, id))
}

func (r *customerRepository) GetByUserID(ctx context.Context, userID int32) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1`
	return scanCustomer(r.db.QueryRowContext(ctx, query, userID))
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET first_name=$1, last_name=$2, email=$3, phone=$4, license_number=$5, address=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query,
		c.FirstName, c.LastName, c.Email, c.Phone, c.LicenseNumber, nullString(c.Address), c.ID,
	)
	return err
}

func scanCustomer(row *sql.Row) (*domain.Customer, error) {
	c := &domain.Customer{}
	var address sql.NullString
	err := row.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.LicenseNumber, &address, &c.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.Address = address.String
	return c, nil
}
