// Package legacydate handles the compact date strings stored on playlists
// and comments. Records created over the years carry either DD/MM/YY or
// DD/MM/YYYY; two-digit years are always 2000-based.
package legacydate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parse reads a DD/MM/YY or DD/MM/YYYY string. Two-digit years map to
// 2000+YY. Returns the zero time and an error for anything else.
func Parse(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("legacydate: invalid date %q", s)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("legacydate: invalid day in %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("legacydate: invalid month in %q", s)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || year < 0 {
		return time.Time{}, fmt.Errorf("legacydate: invalid year in %q", s)
	}

	switch len(parts[2]) {
	case 2:
		year += 2000
	case 4:
		// already absolute
	default:
		return time.Time{}, fmt.Errorf("legacydate: invalid year in %q", s)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// StampShort formats t as DD/MM/YY. Used when stamping new comments.
func StampShort(t time.Time) string {
	return t.Format("02/01/06")
}

// StampLong formats t as DD/MM/YYYY. Used when stamping new playlists.
// The two stamp formats differ on purpose: existing stored data carries
// both, so new records keep matching their collection's convention.
func StampLong(t time.Time) string {
	return t.Format("02/01/2006")
}
