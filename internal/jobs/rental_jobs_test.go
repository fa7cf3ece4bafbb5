package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"calapan-rental-backend/internal/config"
	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/repository"
)

var jobNow = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

type stubVehicles struct {
	repository.VehicleRepository
	vehicle *domain.Vehicle
}

func (s *stubVehicles) GetByID(context.Context, int32) (*domain.Vehicle, error) {
	return s.vehicle, nil
}

type stubRentals struct {
	repository.RentalRepository
	due     []domain.Rental
	overdue []domain.Rental
}

func (s *stubRentals) ListActiveDueBetween(context.Context, time.Time, time.Time) ([]domain.Rental, error) {
	return s.due, nil
}

func (s *stubRentals) ListActiveOverdue(context.Context, time.Time) ([]domain.Rental, error) {
	return s.overdue, nil
}

type stubCustomers struct {
	repository.CustomerRepository
	customer *domain.Customer
}

func (s *stubCustomers) GetByID(context.Context, int32) (*domain.Customer, error) {
	return s.customer, nil
}

type stubUsers struct {
	repository.UserRepository
	admins []domain.User
}

func (s *stubUsers) ListAdmins(context.Context) ([]domain.User, error) {
	return s.admins, nil
}

type stubStore struct {
	vehicles  *stubVehicles
	rentals   *stubRentals
	customers *stubCustomers
	users     *stubUsers
}

func (s *stubStore) Vehicles() repository.VehicleRepository           { return s.vehicles }
func (s *stubStore) Rentals() repository.RentalRepository             { return s.rentals }
func (s *stubStore) Customers() repository.CustomerRepository         { return s.customers }
func (s *stubStore) Users() repository.UserRepository                 { return s.users }
func (s *stubStore) Notifications() repository.NotificationRepository { return nil }
func (s *stubStore) ExecTx(ctx context.Context, fn func(repository.TxStore) error) error {
	return fn(s)
}

type notifyCall struct {
	userID   int32
	title    string
	severity domain.NotificationSeverity
}

type recordingNotifier struct {
	calls []notifyCall
}

func (r *recordingNotifier) Notify(_ context.Context, userID int32, title, _ string, severity domain.NotificationSeverity, _ string) error {
	r.calls = append(r.calls, notifyCall{userID: userID, title: title, severity: severity})
	return nil
}

func newJobFixture(due, overdue []domain.Rental) (*JobRunner, *recordingNotifier) {
	store := &stubStore{
		vehicles: &stubVehicles{vehicle: &domain.Vehicle{ID: 7, Brand: "Toyota", Model: "Vios", PlateNumber: "ABC-1234"}},
		rentals:  &stubRentals{due: due, overdue: overdue},
		customers: &stubCustomers{customer: &domain.Customer{
			ID: 5, UserID: 10, FirstName: "Juan", LastName: "Dela Cruz",
		}},
		users: &stubUsers{admins: []domain.User{{ID: 1, Role: domain.RoleAdmin}, {ID: 2, Role: domain.RoleAdmin}}},
	}
	notifier := &recordingNotifier{}
	runner := NewJobRunner(store, notifier, &config.Config{}, func() time.Time { return jobNow })
	return runner, notifier
}

func TestSendReturnReminders(t *testing.T) {
	due := []domain.Rental{{ID: 3, VehicleID: 7, CustomerID: 5, ReturnDate: jobNow.Add(6 * time.Hour), Status: domain.RentalStatusActive}}
	runner, notifier := newJobFixture(due, nil)

	runner.SendReturnReminders()

	if assert.Len(t, notifier.calls, 1) {
		assert.Equal(t, int32(10), notifier.calls[0].userID)
		assert.Equal(t, "Return Reminder", notifier.calls[0].title)
		assert.Equal(t, domain.SeverityInfo, notifier.calls[0].severity)
	}
}

func TestSendOverdueNotices(t *testing.T) {
	overdue := []domain.Rental{{ID: 3, VehicleID: 7, CustomerID: 5, ReturnDate: jobNow.Add(-26 * time.Hour), Status: domain.RentalStatusActive}}
	runner, notifier := newJobFixture(nil, overdue)

	runner.SendOverdueNotices()

	// one customer notice plus one per admin
	if assert.Len(t, notifier.calls, 3) {
		assert.Equal(t, int32(10), notifier.calls[0].userID)
		assert.Equal(t, "Rental Overdue", notifier.calls[0].title)
		assert.Equal(t, int32(1), notifier.calls[1].userID)
		assert.Equal(t, int32(2), notifier.calls[2].userID)
		assert.Equal(t, "Overdue Rental", notifier.calls[1].title)
	}
}

func TestJobsSurviveEmptyResults(t *testing.T) {
	runner, notifier := newJobFixture(nil, nil)
	runner.RunAllDailyJobs()
	assert.Empty(t, notifier.calls)
}
