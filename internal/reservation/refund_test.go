package reservation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRefundAmount_Tiers(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	value := decimal.NewFromInt(10)

	tests := []struct {
		name         string
		minutesAhead int64
		want         string
	}{
		{"exactly 24h ahead refunds everything", 1440, "10"},
		{"one minute short of 24h refunds 75%", 1439, "7.5"},
		{"exactly 12h ahead refunds 75%", 720, "7.5"},
		{"one minute short of 12h refunds 50%", 719, "5"},
		{"exactly 2h ahead refunds 50%", 120, "5"},
		{"one minute short of 2h refunds 25%", 119, "2.5"},
		{"one minute ahead refunds 25%", 1, "2.5"},
		{"starting right now refunds nothing", 0, "0"},
		{"slot already started refunds nothing", -30, "0"},
		{"well past slots refund nothing", -1440, "0"},
		{"far future refunds everything", 10000, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := now.Add(time.Duration(tt.minutesAhead) * time.Minute)
			got := RefundAmount(now, start, value)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"want %s, got %s", tt.want, got.String())
		})
	}
}

func TestRefundAmount_PartialMinutesFloor(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	value := decimal.NewFromInt(10)

	// 23h59m30s ahead counts as 1439 whole minutes, so the 75% tier applies.
	start := now.Add(24*time.Hour - 30*time.Second)
	got := RefundAmount(now, start, value)
	assert.True(t, got.Equal(decimal.NewFromFloat(7.5)), "got %s", got.String())

	// 59 seconds ahead is zero whole minutes: no refund.
	start = now.Add(59 * time.Second)
	got = RefundAmount(now, start, value)
	assert.True(t, got.IsZero(), "got %s", got.String())
}

func TestRefundAmount_Deterministic(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	start := now.Add(25 * time.Hour)
	value := decimal.NewFromInt(10)

	first := RefundAmount(now, start, value)
	second := RefundAmount(now, start, value)
	assert.True(t, first.Equal(second))
}

func TestMinutesUntil(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(1440), MinutesUntil(now, now.Add(24*time.Hour)))
	assert.Equal(t, int64(1439), MinutesUntil(now, now.Add(24*time.Hour-time.Second)))
	assert.Equal(t, int64(0), MinutesUntil(now, now))
	assert.Equal(t, int64(0), MinutesUntil(now, now.Add(59*time.Second)))
}
