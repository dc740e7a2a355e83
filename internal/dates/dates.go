// Package dates holds small time helpers shared by models and services.
package dates

import "time"

// IsPast is false for a nil time.
func IsPast(t *time.Time, now time.Time) bool {
	return t != nil && t.Before(now)
}

// AddDays returns nil for non-positive day counts.
func AddDays(t time.Time, days int) *time.Time {
	if days <= 0 {
		return nil
	}
	d := t.AddDate(0, 0, days)
	return &d
}
