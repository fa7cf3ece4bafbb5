package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	t.Run("ExactDays", func(t *testing.T) {
		assert.Equal(t, int64(2), RentalDays(date(1, 9), date(3, 9)))
	})

	t.Run("PartialDayRoundsUp", func(t *testing.T) {
		// 2 days and 1 hour bills as 3 days
		assert.Equal(t, int64(3), RentalDays(date(1, 9), date(3, 10)))
	})

	t.Run("ShortRentalBillsOneDay", func(t *testing.T) {
		assert.Equal(t, int64(1), RentalDays(date(1, 9), date(1, 15)))
	})

	t.Run("ExactlyOneDay", func(t *testing.T) {
		assert.Equal(t, int64(1), RentalDays(date(1, 9), date(2, 9)))
	})
}

func TestEngine_RentalCostCents(t *testing.T) {
	engine := NewEngine(200000, 20)

	t.Run("TwoDays", func(t *testing.T) {
		// PHP 15.00/day for 48 hours
		assert.Equal(t, int64(3000), engine.RentalCostCents(1500, date(1, 9), date(3, 9)))
	})

	t.Run("SixHoursBillsFullDay", func(t *testing.T) {
		assert.Equal(t, int64(1500), engine.RentalCostCents(1500, date(1, 9), date(1, 15)))
	})
}

func TestEngine_SecurityDepositCents(t *testing.T) {
	engine := NewEngine(200000, 20)
	assert.Equal(t, int64(200000), engine.SecurityDepositCents())
}

func TestEngine_LateFeeCents(t *testing.T) {
	engine := NewEngine(200000, 20)

	t.Run("OnTimeReturnsNil", func(t *testing.T) {
		assert.Nil(t, engine.LateFeeCents(1000, date(5, 9), date(5, 9)))
	})

	t.Run("EarlyReturnsNil", func(t *testing.T) {
		assert.Nil(t, engine.LateFeeCents(1000, date(5, 9), date(4, 9)))
	})

	t.Run("TwoFullDaysLate", func(t *testing.T) {
		fee := engine.LateFeeCents(1000, date(5, 9), date(7, 9))
		if assert.NotNil(t, fee) {
			// 2 days x 1000 x 20%
			assert.Equal(t, int64(400), *fee)
		}
	})

	t.Run("PartialLateDayNotBilled", func(t *testing.T) {
		fee := engine.LateFeeCents(1000, date(5, 9), date(5, 23))
		if assert.NotNil(t, fee) {
			assert.Equal(t, int64(0), *fee)
		}
	})
}
