package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"calapan-rental-backend/internal/domain"
)

// 2026-03-02 is a Monday.
func monday(hour int) time.Time {
	return time.Date(2026, time.March, 2, hour, 0, 0, 0, time.UTC)
}

func codedVehicle(day string) *domain.Vehicle {
	return &domain.Vehicle{ID: 1, Brand: "Toyota", Model: "Vios", PlateNumber: "ABC-1234", DailyRateCents: 150000, CodingDay: day}
}

func TestAvailabilityPolicy_CodingDay(t *testing.T) {
	policy := NewAvailabilityPolicy()
	now := time.Date(2026, time.February, 25, 10, 0, 0, 0, time.UTC)

	t.Run("RangeCrossingCodingDayRejected", func(t *testing.T) {
		// Sunday through Tuesday crosses the Monday coding day
		start := monday(9).AddDate(0, 0, -1)
		end := monday(9).AddDate(0, 0, 1)
		err := policy.CheckCodingRestriction(codedVehicle("Monday"), start, end, now)
		var policyErr *domain.PolicyViolationError
		if assert.ErrorAs(t, err, &policyErr) {
			assert.Contains(t, policyErr.Reason, "coding day")
		}
	})

	t.Run("OneDayRentalOnCodingDayRejected", func(t *testing.T) {
		err := policy.CheckCodingRestriction(codedVehicle("Monday"), monday(9), monday(15), now)
		var policyErr *domain.PolicyViolationError
		if assert.ErrorAs(t, err, &policyErr) {
			assert.Contains(t, policyErr.Reason, "one-day rental")
		}
	})

	t.Run("RangeAvoidingCodingDayAllowed", func(t *testing.T) {
		// Tuesday to Thursday never touches Monday
		start := monday(9).AddDate(0, 0, 1)
		end := monday(9).AddDate(0, 0, 3)
		assert.NoError(t, policy.CheckCodingRestriction(codedVehicle("Monday"), start, end, now))
	})

	t.Run("CaseInsensitiveWeekdayMatch", func(t *testing.T) {
		err := policy.CheckCodingRestriction(codedVehicle("monday"), monday(9), monday(9).AddDate(0, 0, 1), now)
		assert.Error(t, err)
	})

	t.Run("NoCodingDayAllowed", func(t *testing.T) {
		assert.NoError(t, policy.CheckCodingRestriction(codedVehicle(""), monday(9), monday(9).AddDate(0, 0, 2), now))
	})
}

func TestAvailabilityPolicy_LongRentalWaiver(t *testing.T) {
	policy := NewAvailabilityPolicy()
	now := monday(8)

	t.Run("SevenDayRentalCrossingCodingDayAllowed", func(t *testing.T) {
		start := monday(9)
		end := monday(9).AddDate(0, 0, 7)
		assert.NoError(t, policy.CheckCodingRestriction(codedVehicle("Monday"), start, end, now))
	})

	t.Run("EightDaySameDayStartAllowed", func(t *testing.T) {
		// The waiver also lifts the same-day rule
		start := monday(9)
		end := monday(9).AddDate(0, 0, 8)
		assert.NoError(t, policy.CheckCodingRestriction(codedVehicle("Tuesday"), start, end, now))
	})
}

func TestAvailabilityPolicy_SameDayRule(t *testing.T) {
	policy := NewAvailabilityPolicy()
	now := monday(8)

	t.Run("ShortSameDayBookingRejected", func(t *testing.T) {
		err := policy.CheckCodingRestriction(codedVehicle(""), monday(10), monday(10).AddDate(0, 0, 2), now)
		var policyErr *domain.PolicyViolationError
		if assert.ErrorAs(t, err, &policyErr) {
			assert.Contains(t, policyErr.Reason, "same-day")
			assert.NotContains(t, policyErr.Reason, "coding")
		}
	})

	t.Run("SameDayOnCodingDayGetsCombinedMessage", func(t *testing.T) {
		err := policy.CheckCodingRestriction(codedVehicle("Monday"), monday(10), monday(10).AddDate(0, 0, 2), now)
		var policyErr *domain.PolicyViolationError
		if assert.ErrorAs(t, err, &policyErr) {
			assert.Contains(t, policyErr.Reason, "same-day")
			assert.Contains(t, policyErr.Reason, "coding day")
		}
	})

	t.Run("NextDayStartAllowed", func(t *testing.T) {
		start := monday(10).AddDate(0, 0, 1)
		err := policy.CheckCodingRestriction(codedVehicle(""), start, start.AddDate(0, 0, 2), now)
		assert.NoError(t, err)
	})
}
