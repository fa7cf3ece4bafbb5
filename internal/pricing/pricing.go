// Package pricing holds the deterministic monetary computations of the
// booking engine. All amounts are integer centavos; nothing here touches
// storage or floating point.
package pricing

import "time"

// Engine computes rental cost, security deposit and late fees from the
// configured constants.
type Engine struct {
	securityDepositCents int64
	lateFeePercent       int64
}

func NewEngine(securityDepositCents, lateFeePercent int64) *Engine {
	return &Engine{
		securityDepositCents: securityDepositCents,
		lateFeePercent:       lateFeePercent,
	}
}

// RentalDays returns the billed duration in whole days: the hour span rounded
// up to the next day, minimum one day.
func RentalDays(start, end time.Time) int64 {
	span := end.Sub(start)
	days := int64(span / (24 * time.Hour))
	if span%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// RentalCostCents is dailyRate * RentalDays.
func (e *Engine) RentalCostCents(dailyRateCents int64, start, end time.Time) int64 {
	return dailyRateCents * RentalDays(start, end)
}

// SecurityDepositCents returns the fixed deposit. It does not depend on the
// vehicle or the duration and is charged exactly once, at creation.
func (e *Engine) SecurityDepositCents() int64 {
	return e.securityDepositCents
}

// LateFeeCents returns nil when the vehicle came back on or before the
// scheduled return. Otherwise the fee is lateFeePercent of the daily rate per
// full day late (partial days are not billed).
func (e *Engine) LateFeeCents(dailyRateCents int64, scheduled, actual time.Time) *int64 {
	if !actual.After(scheduled) {
		return nil
	}
	lateDays := int64(actual.Sub(scheduled) / (24 * time.Hour))
	fee := lateDays * dailyRateCents * e.lateFeePercent / 100
	return &fee
}
