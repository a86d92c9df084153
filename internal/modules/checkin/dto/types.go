package dto

import "time"

type SubmitInput struct {
	DateKey string
	Hours   string
}

type RecordOutput struct {
	Date  string
	Hours float64
	Quote string
}

type SubmitOutput struct {
	Record RecordOutput
	// Created is false when the date already had a record; Record then holds
	// the stored values.
	Created bool
	// Persisted is false when the ledger kept the record in memory but the
	// store could not be written.
	Persisted bool
	Warning   string
}

type StatusInput struct {
	Selected time.Time
}

type StatusOutput struct {
	TodayKey          string
	SelectedKey       string
	TotalCheckIns     int
	TotalHours        float64
	Streak            int
	SelectedCheckedIn bool
	SelectedIsFuture  bool
	SelectedRecord    RecordOutput
}
