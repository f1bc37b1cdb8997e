package usecase

import (
	"context"

	"hundvakt-service/internal/domain/entity"
)

// SaveWeek replaces one week's plan. Entries without any scheduled day are
// dropped so the stored week only holds dogs that actually attend.
func (g *Gateway) SaveWeek(ctx context.Context, weekKey string, draft entity.WeekSchedule) error {
	toSave := entity.WeekSchedule{}
	for dogID, plan := range draft {
		if len(plan.Days) > 0 {
			toSave[dogID] = plan.Clone()
		}
	}

	return g.UpdateSchedules(ctx, func(prev entity.ScheduleBook) entity.ScheduleBook {
		prev[weekKey] = toSave
		return prev
	})
}

// CopyWeek duplicates one week's plan into another week. The copy shares no
// structure with the source, so later edits to either week stay independent.
// Copying from a week that was never saved is a no-op.
func (g *Gateway) CopyWeek(ctx context.Context, fromWeek, toWeek string) error {
	src, ok := g.Schedules()[fromWeek]
	if !ok {
		return nil
	}

	return g.UpdateSchedules(ctx, func(prev entity.ScheduleBook) entity.ScheduleBook {
		prev[toWeek] = src.Clone()
		return prev
	})
}
