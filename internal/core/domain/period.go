package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Period is a calendar month in YYYY-MM form, the unit of closing/locking.
type Period string

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// PeriodFromDate derives the period of a date.
func PeriodFromDate(date time.Time) Period {
	return Period(date.Format("2006-01"))
}

// ParsePeriod validates s as a YYYY-MM period.
func ParsePeriod(s string) (Period, error) {
	if !periodPattern.MatchString(s) {
		return "", fmt.Errorf("invalid period %q, expected YYYY-MM", s)
	}
	return Period(s), nil
}

func (p Period) String() string {
	return string(p)
}

// Start returns the first day of the period (UTC).
func (p Period) Start() time.Time {
	t, _ := time.Parse("2006-01", string(p))
	return t
}

// End returns the last day of the period (UTC).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Prev returns the preceding calendar month.
func (p Period) Prev() Period {
	return PeriodFromDate(p.Start().AddDate(0, -1, 0))
}

// PeriodClosing locks a period. Existence of a closing record means no
// journal entry or document may be created within that period.
type PeriodClosing struct {
	Period   Period    `json:"period"`
	ClosedAt time.Time `json:"closedAt"`
	ClosedBy string    `json:"closedBy"`
	Notes    string    `json:"notes"`
}
