package service

import (
	"context"
	"strings"

	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/repository"
	"calapan-rental-backend/internal/security"
)

type vehicleService struct {
	store repository.TxStore
}

func NewVehicleService(store repository.TxStore) VehicleService {
	return &vehicleService{store: store}
}

func (s *vehicleService) AddVehicle(ctx context.Context, p security.Principal, v *domain.Vehicle) error {
	if !p.IsAdmin() {
		return ErrUnauthorized
	}
	if err := validateVehicle(v); err != nil {
		return err
	}
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	return s.store.Vehicles().Create(ctx, v)
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, p security.Principal, v *domain.Vehicle) error {
	if !p.IsAdmin() {
		return ErrUnauthorized
	}
	if err := validateVehicle(v); err != nil {
		return err
	}
	return s.store.Vehicles().Update(ctx, v)
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return s.store.Vehicles().GetByID(ctx, id)
}

func (s *vehicleService) ListVehicles(ctx context.Context, status domain.VehicleStatus, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	return s.store.Vehicles().List(ctx, status, page, pageSize)
}

func validateVehicle(v *domain.Vehicle) error {
	if strings.TrimSpace(v.Brand) == "" {
		return &domain.ValidationError{Field: "brand", Reason: "brand is required"}
	}
	if strings.TrimSpace(v.Model) == "" {
		return &domain.ValidationError{Field: "model", Reason: "model is required"}
	}
	if strings.TrimSpace(v.PlateNumber) == "" {
		return &domain.ValidationError{Field: "plate_number", Reason: "plate number is required"}
	}
	if v.DailyRateCents <= 0 {
		return &domain.ValidationError{Field: "daily_rate", Reason: "daily rate must be positive"}
	}
	if v.CodingDay != "" && !validWeekday(v.CodingDay) {
		return &domain.ValidationError{Field: "coding_day", Reason: "coding day must be a weekday name"}
	}
	return nil
}

func validWeekday(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}
