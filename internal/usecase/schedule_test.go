package usecase

import (
	"context"
	"testing"

	"hundvakt-service/internal/domain/entity"

	"github.com/stretchr/testify/require"
)

func TestSaveWeek_DropsEmptyDaySets(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(newFakeDocumentRepo())

	err := gw.SaveWeek(ctx, "2024-W10", entity.WeekSchedule{
		"dogX": {Days: []string{"Måndag", "Onsdag"}, DropOffTime: "08:00"},
		"dogY": {Days: []string{}, PickUpTime: "16:00"},
	})
	require.NoError(t, err)

	week := gw.Schedules()["2024-W10"]
	require.Len(t, week, 1)
	require.Contains(t, week, "dogX")
	require.NotContains(t, week, "dogY")
}

func TestSaveWeek_SupersedesPreviousWeekEntry(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(newFakeDocumentRepo())

	require.NoError(t, gw.SaveWeek(ctx, "2024-W10", entity.WeekSchedule{
		"dogX": {Days: []string{"Måndag"}},
	}))
	require.NoError(t, gw.SaveWeek(ctx, "2024-W10", entity.WeekSchedule{
		"dogY": {Days: []string{"Fredag"}},
	}))

	week := gw.Schedules()["2024-W10"]
	require.Len(t, week, 1)
	require.Contains(t, week, "dogY")
}

func TestCopyWeek_CopyIsIndependentOfSource(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(newFakeDocumentRepo())

	require.NoError(t, gw.SaveWeek(ctx, "2024-W10", entity.WeekSchedule{
		"dogX": {Days: []string{"Måndag"}, DropOffTime: "08:00"},
	}))
	require.NoError(t, gw.CopyWeek(ctx, "2024-W10", "2024-W11"))

	// Clearing the copy's days must not reach the source week.
	require.NoError(t, gw.SaveWeek(ctx, "2024-W11", entity.WeekSchedule{
		"dogX": {Days: []string{}, DropOffTime: "08:00"},
	}))

	require.Equal(t, []string{"Måndag"}, gw.Schedules()["2024-W10"]["dogX"].Days)
	require.Empty(t, gw.Schedules()["2024-W11"])
}

func TestCopyWeek_MissingSourceIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo := newFakeDocumentRepo()
	gw := newTestGateway(repo)

	require.NoError(t, gw.CopyWeek(ctx, "2024-W01", "2024-W02"))
	require.Equal(t, 0, repo.saveCount())
	require.Empty(t, gw.Schedules())
}

func TestCheckInAndOutLifecycle(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(newFakeDocumentRepo())

	require.NoError(t, gw.CheckIn(ctx, "2024-03-04", "dogX", "08:05"))
	rec := gw.Attendance()["2024-03-04"]["dogX"]
	require.True(t, rec.CheckedIn)
	require.Equal(t, "08:05", rec.CheckInTime)
	require.False(t, rec.CheckedOut)

	require.NoError(t, gw.CheckOut(ctx, "2024-03-04", "dogX", "16:30"))
	rec = gw.Attendance()["2024-03-04"]["dogX"]
	require.True(t, rec.CheckedIn)
	require.Equal(t, "08:05", rec.CheckInTime)
	require.True(t, rec.CheckedOut)
	require.Equal(t, "16:30", rec.CheckOutTime)

	require.NoError(t, gw.UndoCheckOut(ctx, "2024-03-04", "dogX"))
	rec = gw.Attendance()["2024-03-04"]["dogX"]
	require.True(t, rec.CheckedIn)
	require.False(t, rec.CheckedOut)
	require.Empty(t, rec.CheckOutTime)

	require.NoError(t, gw.UndoCheckIn(ctx, "2024-03-04", "dogX"))
	require.NotContains(t, gw.Attendance()["2024-03-04"], "dogX")
}

func TestCheckIn_StartsFreshRecord(t *testing.T) {
	ctx := context.Background()
	gw := newTestGateway(newFakeDocumentRepo())

	require.NoError(t, gw.CheckIn(ctx, "2024-03-04", "dogX", "08:00"))
	require.NoError(t, gw.CheckOut(ctx, "2024-03-04", "dogX", "16:00"))

	// A renewed check-in clears the earlier check-out.
	require.NoError(t, gw.CheckIn(ctx, "2024-03-04", "dogX", "17:00"))
	rec := gw.Attendance()["2024-03-04"]["dogX"]
	require.Equal(t, "17:00", rec.CheckInTime)
	require.False(t, rec.CheckedOut)
	require.Empty(t, rec.CheckOutTime)
}
