package billing

import "time"

// expiringSoonWindowDays is the warning window before expiry.
const expiringSoonWindowDays = 7

// AddMonths advances a date by whole calendar months, clamping the day to
// the last day of the target month (Jan 31 + 1 month = Feb 28/29).
// time.Time.AddDate normalizes overflow instead (Jan 31 + 1 = Mar 2/3),
// which is not what membership terms mean by "a month".
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, t.Location())
}

// ExpiryDate returns the membership expiry date, or ok=false when the
// member is not prepaying and no expiry is defined.
func ExpiryDate(joinDate time.Time, prepay bool, months int) (time.Time, bool) {
	if !prepay || months <= 0 {
		return time.Time{}, false
	}
	return AddMonths(joinDate, months), true
}

// DaysUntilExpiry returns whole days from today until expiry (negative
// once expired), or ok=false when no expiry is defined.
func DaysUntilExpiry(joinDate time.Time, prepay bool, months int, today time.Time) (int, bool) {
	expiry, ok := ExpiryDate(joinDate, prepay, months)
	if !ok {
		return 0, false
	}
	days := int(truncateToDay(expiry).Sub(truncateToDay(today)).Hours() / 24)
	return days, true
}

// ExpiringSoon reports whether the membership expires within the warning
// window: 0 <= days until expiry <= 7. Always false when expiry is undefined.
func ExpiringSoon(joinDate time.Time, prepay bool, months int, today time.Time) bool {
	days, ok := DaysUntilExpiry(joinDate, prepay, months, today)
	return ok && days >= 0 && days <= expiringSoonWindowDays
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
