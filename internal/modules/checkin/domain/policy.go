package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"examprep/internal/platform/datemath"
	apperrors "examprep/internal/platform/errors"
)

type Policy struct {
	MinimumHours     float64
	StartDate        time.Time
	AllowBeforeStart bool
}

func (p Policy) CheckHours(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < p.MinimumHours {
		return fmt.Errorf("%w: need at least %.1f hours", apperrors.ErrBelowMinimumHours, p.MinimumHours)
	}
	return nil
}

// CheckDate rejects days after today and, unless allowed, days before the
// study start.
func (p Policy) CheckDate(date, today time.Time) error {
	value := datemath.DateValue(date)
	if value > datemath.DateValue(today) {
		return fmt.Errorf("%w: %s", apperrors.ErrFutureDate, datemath.FormatDateKey(date))
	}
	if !p.AllowBeforeStart && !p.StartDate.IsZero() && value < datemath.DateValue(p.StartDate) {
		return fmt.Errorf("%w: %s", apperrors.ErrBeforeStart, datemath.FormatDateKey(date))
	}
	return nil
}

// ParseHours reads user-entered hours. Blank or non-numeric text counts as
// too few hours.
func ParseHours(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("%w: hours are required", apperrors.ErrBelowMinimumHours)
	}
	hours, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", apperrors.ErrBelowMinimumHours, input)
	}
	return hours, nil
}
