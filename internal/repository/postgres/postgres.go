package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"calapan-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so every
// repository can run either standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.RentalRepository
	repository.CustomerRepository
	repository.UserRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		VehicleRepository:      NewVehicleRepository(db),
		RentalRepository:       NewRentalRepository(db),
		CustomerRepository:     NewCustomerRepository(db),
		UserRepository:         NewUserRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

func (s *Store) Vehicles() repository.VehicleRepository          { return s.VehicleRepository }
func (s *Store) Rentals() repository.RentalRepository            { return s.RentalRepository }
func (s *Store) Customers() repository.CustomerRepository        { return s.CustomerRepository }
func (s *Store) Users() repository.UserRepository                { return s.UserRepository }
func (s *Store) Notifications() repository.NotificationRepository { return s.NotificationRepository }

// ExecTx runs fn with a Store bound to a single database transaction.
// Lifecycle operations use this so that the status guard, the conflict
// re-query and the writes commit as one unit.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.TxStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	txStore := &Store{
		db:                     s.db,
		VehicleRepository:      NewVehicleRepository(tx),
		RentalRepository:       NewRentalRepository(tx),
		CustomerRepository:     NewCustomerRepository(tx),
		UserRepository:         NewUserRepository(tx),
		NotificationRepository: NewNotificationRepository(tx),
	}

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %w", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
