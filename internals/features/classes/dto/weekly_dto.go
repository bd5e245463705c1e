package dto

import (
	"time"

	scheduleModel "clubfit_backend/internals/features/schedules/model"
)

/* ===============================
   Responses: visão semanal pública
=================================*/

// Origem de cada aula na visão agregada.
const (
	SourceOVG     = "OVG"
	SourceClubFit = "CLUBFIT"
)

type WeeklyClassResponse struct {
	Name        string                      `json:"name"`
	Category    scheduleModel.ClassCategory `json:"category"`
	StartTime   string                      `json:"start_time"`
	EndTime     string                      `json:"end_time"`
	DurationMin int                         `json:"duration_min"`
	Room        string                      `json:"room"`
	Instructor  string                      `json:"instructor"`
	Intensity   int                         `json:"intensity"` // 1..4
	Source      string                      `json:"source"`
}

type WeeklyDayResponse struct {
	Date        string                `json:"date"` // YYYY-MM-DD
	Weekday     int                   `json:"weekday"`
	WeekdayName string                `json:"weekday_name"`
	Classes     []WeeklyClassResponse `json:"classes"`
}

// Days vem sempre com 7 entradas, de segunda a domingo.
type WeeklyClassesResponse struct {
	WeekStart string              `json:"week_start"` // segunda-feira, YYYY-MM-DD
	Days      []WeeklyDayResponse `json:"days"`
	FetchedAt time.Time           `json:"fetched_at"`
}
