package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/repository"
)

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockVehicleRepo) List(ctx context.Context, status domain.VehicleStatus, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, r *domain.Rental) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByVehicleAndStatuses(ctx context.Context, vehicleID int32, statuses []domain.RentalStatus, excludeID int32) ([]domain.Rental, error) {
	args := m.Called(ctx, vehicleID, statuses, excludeID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) List(ctx context.Context, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListByCustomer(ctx context.Context, customerID int32, status domain.RentalStatus, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, customerID, status, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListActiveDueBetween(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListActiveOverdue(ctx context.Context, asOf time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByUserID(ctx context.Context, userID int32) (*domain.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ListAdmins(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) SetLocationTracking(ctx context.Context, userID int32, enabled bool) error {
	args := m.Called(ctx, userID, enabled)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID int32, title, message string, severity domain.NotificationSeverity, actionURL string) error {
	args := m.Called(ctx, userID, title, message, severity, actionURL)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRentalApprovalEmail(ctx context.Context, email, name, vehicle string, pickup, returnDate time.Time, totalCents, costCents, depositCents int64) error {
	args := m.Called(ctx, email, name, vehicle, pickup, returnDate, totalCents, costCents, depositCents)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalRejectionEmail(ctx context.Context, email, name, vehicle, reason string) error {
	args := m.Called(ctx, email, name, vehicle, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendRentalReturnEmail(ctx context.Context, email, name, vehicle string, lateFeeCents int64, disposition domain.DepositStatus) error {
	args := m.Called(ctx, email, name, vehicle, lateFeeCents, disposition)
	return args.Error(0)
}

// fakeStore implements repository.TxStore over the mocks. ExecTx runs the
// callback inline against the same store, standing in for a real
// transaction.
type fakeStore struct {
	vehicles      *MockVehicleRepo
	rentals       *MockRentalRepo
	customers     *MockCustomerRepo
	users         *MockUserRepo
	notifications *MockNotificationRepo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vehicles:      new(MockVehicleRepo),
		rentals:       new(MockRentalRepo),
		customers:     new(MockCustomerRepo),
		users:         new(MockUserRepo),
		notifications: new(MockNotificationRepo),
	}
}

func (s *fakeStore) Vehicles() repository.VehicleRepository          { return s.vehicles }
func (s *fakeStore) Rentals() repository.RentalRepository            { return s.rentals }
func (s *fakeStore) Customers() repository.CustomerRepository        { return s.customers }
func (s *fakeStore) Users() repository.UserRepository                { return s.users }
func (s *fakeStore) Notifications() repository.NotificationRepository { return s.notifications }
func (s *fakeStore) ExecTx(ctx context.Context, fn func(repository.TxStore) error) error {
	return fn(s)
}
