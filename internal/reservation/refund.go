package reservation

import (
	"time"

	"github.com/shopspring/decimal"
)

// SlotPrice is the flat price of a one-hour slot at booking time.
var SlotPrice = decimal.NewFromInt(10)

var (
	refundFull    = decimal.NewFromInt(1)
	refundThreeQ  = decimal.NewFromFloat(0.75)
	refundHalf    = decimal.NewFromFloat(0.5)
	refundQuarter = decimal.NewFromFloat(0.25)
)

// MinutesUntil returns the whole minutes between now and start.
// Partial minutes are dropped, so 23h59m30s counts as 1439 minutes.
func MinutesUntil(now, start time.Time) int64 {
	return int64(start.Sub(now) / time.Minute)
}

// RefundAmount computes the refund owed when a reservation on a slot starting
// at start is cancelled at now. Tiers by lead time, first match wins:
//
//	>= 24h         100%
//	12h  to < 24h   75%
//	2h   to < 12h   50%
//	1min to < 2h    25%
//	less            nothing
func RefundAmount(now, start time.Time, value decimal.Decimal) decimal.Decimal {
	minutes := MinutesUntil(now, start)

	switch {
	case minutes >= 1440:
		return value.Mul(refundFull)
	case minutes >= 720:
		return value.Mul(refundThreeQ)
	case minutes >= 120:
		return value.Mul(refundHalf)
	case minutes >= 1:
		return value.Mul(refundQuarter)
	}

	return decimal.Zero
}
