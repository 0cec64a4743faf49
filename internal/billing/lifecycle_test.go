package billing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"plain month", date(2025, time.March, 15), 1, date(2025, time.April, 15)},
		{"jan 31 to feb", date(2025, time.January, 31), 1, date(2025, time.February, 28)},
		{"jan 31 to leap feb", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"may 31 to jun 30", date(2025, time.May, 31), 1, date(2025, time.June, 30)},
		{"year rollover", date(2025, time.November, 15), 3, date(2026, time.February, 15)},
		{"twelve months", date(2025, time.June, 1), 12, date(2026, time.June, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.start, tt.months)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonths(%v, %d) = %v; want %v", tt.start, tt.months, got, tt.want)
			}
		})
	}
}

func TestExpiryDateUndefinedWithoutPrepay(t *testing.T) {
	join := date(2025, time.January, 10)

	if _, ok := ExpiryDate(join, false, 6); ok {
		t.Error("expiry should be undefined when not prepaying")
	}
	if _, ok := ExpiryDate(join, true, 0); ok {
		t.Error("expiry should be undefined with zero months")
	}

	expiry, ok := ExpiryDate(join, true, 6)
	if !ok {
		t.Fatal("expiry should be defined when prepaying")
	}
	if want := date(2025, time.July, 10); !expiry.Equal(want) {
		t.Errorf("ExpiryDate = %v; want %v", expiry, want)
	}
}

func TestDaysUntilExpiry(t *testing.T) {
	join := date(2025, time.January, 1)

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"well before", date(2025, time.January, 15), 76},
		{"day before", date(2025, time.March, 31), 1},
		{"expiry day", date(2025, time.April, 1), 0},
		{"expired", date(2025, time.April, 5), -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, ok := DaysUntilExpiry(join, true, 3, tt.today)
			if !ok {
				t.Fatal("expected defined expiry")
			}
			if days != tt.want {
				t.Errorf("DaysUntilExpiry(today=%v) = %d; want %d", tt.today, days, tt.want)
			}
		})
	}

	if _, ok := DaysUntilExpiry(join, false, 3, date(2025, time.February, 1)); ok {
		t.Error("days should be undefined when not prepaying")
	}
}

func TestExpiringSoonWindow(t *testing.T) {
	join := date(2025, time.January, 1)
	// Expiry lands on April 1 for three prepaid months.

	tests := []struct {
		name  string
		today time.Time
		want  bool
	}{
		{"outside window", date(2025, time.March, 24), false},
		{"window opens", date(2025, time.March, 25), true},
		{"mid window", date(2025, time.March, 29), true},
		{"expiry day", date(2025, time.April, 1), true},
		{"already expired", date(2025, time.April, 2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpiringSoon(join, true, 3, tt.today); got != tt.want {
				t.Errorf("ExpiringSoon(today=%v) = %v; want %v", tt.today, got, tt.want)
			}
		})
	}

	if ExpiringSoon(join, false, 0, date(2025, time.March, 29)) {
		t.Error("undefined expiry can never be expiring soon")
	}
}
