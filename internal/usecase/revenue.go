package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"hundvakt-service/internal/domain/entity"
	"hundvakt-service/pkg/utils"
)

// Income is the revenue over a date range: what the schedule promised and
// what attendance actually delivered.
type Income struct {
	Expected float64 `json:"expected"`
	Actual   float64 `json:"actual"`
}

// IncomeBetween walks every weekday from start through end and sums each
// scheduled dog's daily price into Expected and each checked-in dog's price
// into Actual. Weekends never count.
func IncomeBetween(doc *entity.Document, start, end time.Time) Income {
	var income Income

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dayName := utils.DayName(day)
		if dayName == "" {
			continue
		}

		weekSchedule := doc.Schedules[utils.WeekKey(day)]
		dayAttendance := doc.Attendance[utils.DateKey(day)]

		for _, dog := range doc.Dogs {
			if plan, ok := weekSchedule[dog.ID]; ok && plan.HasDay(dayName) {
				income.Expected += dog.DailyPrice
			}
			if rec, ok := dayAttendance[dog.ID]; ok && rec.CheckedIn {
				income.Actual += dog.DailyPrice
			}
		}
	}

	return income
}

// MonthlyAttendanceCSV renders the month's attended days as CSV, one row per
// checked-in dog per day.
func MonthlyAttendanceCSV(doc *entity.Document, month time.Time) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Datum", "Hund", "Pris", "Status"}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	last := first.AddDate(0, 1, -1)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		dateKey := utils.DateKey(day)
		dayAttendance := doc.Attendance[dateKey]

		for _, dog := range doc.Dogs {
			rec, ok := dayAttendance[dog.ID]
			if !ok || !rec.CheckedIn {
				continue
			}
			row := []string{dateKey, dog.Name, fmt.Sprintf("%g", dog.DailyPrice), "Närvarande"}
			if err := w.Write(row); err != nil {
				return "", fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}
