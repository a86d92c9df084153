package dto

import "time"

type PlanInput struct {
	Date time.Time
}

type PlanOutput struct {
	DateKey       string
	Kind          string
	Phase         string
	Focus         string
	Tasks         []string
	DaysUntilExam int
}

type RangeOutput struct {
	Start string
	End   string
	Kind  string
	Phase string
	Focus string
	Tasks []string
}
