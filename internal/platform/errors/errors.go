package apperrors

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNotFound               = errors.New("not found")
	ErrBelowMinimumHours      = errors.New("hours below minimum")
	ErrPersistenceCorrupt     = errors.New("stored snapshot is corrupt")
	ErrPersistenceUnavailable = errors.New("storage unavailable")
	ErrFutureDate             = errors.New("date is in the future")
	ErrBeforeStart            = errors.New("date is before the study start")
	ErrInvalidSchedule        = errors.New("invalid schedule")
)
