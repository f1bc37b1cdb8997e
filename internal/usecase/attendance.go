package usecase

import (
	"context"

	"hundvakt-service/internal/domain/entity"
)

// CheckIn records a dog's arrival for the given date. It starts a fresh
// record, clearing any earlier check-out state for that day.
func (g *Gateway) CheckIn(ctx context.Context, dateKey, dogID, clock string) error {
	return g.UpdateAttendance(ctx, func(prev entity.AttendanceBook) entity.AttendanceBook {
		day := prev[dateKey]
		if day == nil {
			day = entity.DayAttendance{}
		}
		day[dogID] = entity.AttendanceRecord{
			CheckedIn:   true,
			CheckInTime: clock,
		}
		prev[dateKey] = day
		return prev
	})
}

// UndoCheckIn removes the dog's record for the date entirely.
func (g *Gateway) UndoCheckIn(ctx context.Context, dateKey, dogID string) error {
	return g.UpdateAttendance(ctx, func(prev entity.AttendanceBook) entity.AttendanceBook {
		if day, ok := prev[dateKey]; ok {
			delete(day, dogID)
			prev[dateKey] = day
		}
		return prev
	})
}

// CheckOut records a dog's departure, keeping its check-in fields.
func (g *Gateway) CheckOut(ctx context.Context, dateKey, dogID, clock string) error {
	return g.UpdateAttendance(ctx, func(prev entity.AttendanceBook) entity.AttendanceBook {
		day := prev[dateKey]
		if day == nil {
			day = entity.DayAttendance{}
		}
		rec := day[dogID]
		rec.CheckedOut = true
		rec.CheckOutTime = clock
		day[dogID] = rec
		prev[dateKey] = day
		return prev
	})
}

// UndoCheckOut clears the check-out fields, keeping the check-in.
func (g *Gateway) UndoCheckOut(ctx context.Context, dateKey, dogID string) error {
	return g.UpdateAttendance(ctx, func(prev entity.AttendanceBook) entity.AttendanceBook {
		day := prev[dateKey]
		if day == nil {
			return prev
		}
		rec := day[dogID]
		rec.CheckedOut = false
		rec.CheckOutTime = ""
		day[dogID] = rec
		prev[dateKey] = day
		return prev
	})
}
