package service

import (
	"fmt"
	"strings"
	"time"

	"calapan-rental-backend/internal/domain"
	"calapan-rental-backend/internal/pricing"
)

// codingWaiverDays is the rental length at which coding-day and same-day
// restrictions stop applying. Week-long rentals inevitably cross every
// weekday, so blocking them would block the vehicle outright.
const codingWaiverDays = 7

// AvailabilityPolicy decides whether a vehicle may be booked for a candidate
// date range under the local "coding day" (odd-even) scheme. It is pure: it
// reads the vehicle's static coding attribute, the range and the supplied
// "now", and touches nothing else.
type AvailabilityPolicy struct{}

func NewAvailabilityPolicy() *AvailabilityPolicy {
	return &AvailabilityPolicy{}
}

// CheckCodingRestriction returns nil when the booking is permissible, or a
// *domain.PolicyViolationError whose reason names the exact rule that was
// hit. The same-day rule is evaluated before the coding-day scan and applies
// to every vehicle, coding-restricted or not.
func (p *AvailabilityPolicy) CheckCodingRestriction(v *domain.Vehicle, start, end, now time.Time) error {
	if pricing.RentalDays(start, end) >= codingWaiverDays {
		return nil
	}

	coding := strings.ToLower(strings.TrimSpace(v.CodingDay))

	if sameCalendarDay(start, now) {
		if coding != "" && weekdayName(start) == coding {
			return &domain.PolicyViolationError{Reason: fmt.Sprintf(
				"same-day bookings under %d days are not accepted, and today (%s) is also the coding day for this vehicle; please pick a later start date",
				codingWaiverDays, start.Weekday())}
		}
		return &domain.PolicyViolationError{Reason: fmt.Sprintf(
			"same-day bookings under %d days are not accepted; book at least one day ahead or rent for %d days or more",
			codingWaiverDays, codingWaiverDays)}
	}

	if coding == "" {
		return nil
	}

	lastDay := startOfDay(end)
	for day := startOfDay(start); !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		if weekdayName(day) != coding {
			continue
		}
		if sameCalendarDay(start, end) {
			return &domain.PolicyViolationError{Reason: fmt.Sprintf(
				"%s is the coding day for this vehicle; a one-day rental on %s is not allowed",
				v.CodingDay, day.Format("January 2, 2006"))}
		}
		return &domain.PolicyViolationError{Reason: fmt.Sprintf(
			"the requested period includes %s, which falls on the vehicle's coding day (%s); rentals of %d days or more are exempt",
			day.Format("January 2, 2006"), v.CodingDay, codingWaiverDays)}
	}
	return nil
}

func weekdayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
