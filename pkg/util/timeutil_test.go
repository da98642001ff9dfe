package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCalendarDateUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("Asia/Tokyo", 9*60*60)
	late := time.Date(2025, 10, 11, 20, 30, 0, 0, time.UTC)

	require.Equal(t, "2025-10-12", CalendarDate(late, tokyo).Format(DateLayout))
	require.Equal(t, "2025-10-11", CalendarDate(late, time.UTC).Format(DateLayout))
}

func TestDaysBetween(t *testing.T) {
	base := time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)
	require.Equal(t, 0, DaysBetween(base, base.Add(23*time.Hour)))
	require.Equal(t, 7, DaysBetween(base, base.AddDate(0, 0, 7)))
	require.Equal(t, -1, DaysBetween(base, base.AddDate(0, 0, -1)))
}
