// Package calendar validates requested dates against the forecast horizon.
package calendar

import (
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
	"github.com/Captain-T2004/Ongaku-Backend/pkg/util"
)

const defaultMaxDaysAhead = 7

// Window accepts dates from today up to MaxDaysAhead days later, where today is the
// calendar date in Location.
type Window struct {
	Location     *time.Location
	MaxDaysAhead int
}

// NewWindow builds a window for the named timezone. Unknown zones fall back to JST.
func NewWindow(timezone string, maxDaysAhead int) Window {
	if maxDaysAhead <= 0 {
		maxDaysAhead = defaultMaxDaysAhead
	}
	loc, err := time.LoadLocation(strings.TrimSpace(timezone))
	if err != nil || strings.TrimSpace(timezone) == "" {
		loc = time.FixedZone("Asia/Tokyo", 9*60*60)
	}
	return Window{Location: loc, MaxDaysAhead: maxDaysAhead}
}

// Today returns the current calendar date as UTC midnight.
func (w Window) Today(now time.Time) time.Time {
	return util.CalendarDate(now, w.Location)
}

// Start parses raw as YYYY-MM-DD and checks it lies inside the window. An empty raw
// selects today.
func (w Window) Start(now time.Time, raw string) (time.Time, error) {
	today := w.Today(now)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return today, nil
	}

	date, err := time.Parse(util.DateLayout, raw)
	if err != nil {
		return time.Time{}, i18n.Error(apperrors.CodeInvalidInput, i18n.KeyInvalidDate, err, raw)
	}
	ahead := util.DaysBetween(today, date)
	if ahead < 0 {
		return time.Time{}, i18n.Error(apperrors.CodeInvalidInput, i18n.KeyPastDate, nil, raw).
			WithDetail("today", today.Format(util.DateLayout))
	}
	if ahead > w.MaxDaysAhead {
		return time.Time{}, i18n.Error(apperrors.CodeInvalidInput, i18n.KeyDateTooFar, nil, w.MaxDaysAhead).
			WithDetail("requested_date", raw).
			WithDetail("max_date", today.AddDate(0, 0, w.MaxDaysAhead).Format(util.DateLayout))
	}
	return date, nil
}
