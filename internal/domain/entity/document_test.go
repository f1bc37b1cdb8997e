package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	created := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	return &Document{
		Customers: []Customer{
			{ID: "c1", Name: "Anna", Phone: "070-1", Email: "anna@example.com", CreatedAt: created},
		},
		Dogs: []Dog{
			{ID: "d1", Name: "Buddy", DailyPrice: 100, CustomerID: "c1", CreatedAt: created},
		},
		Schedules: ScheduleBook{
			"2024-W10": {
				"d1": {Days: []string{"Måndag", "Onsdag"}, DropOffTime: "08:00", PickUpTime: "16:00"},
			},
		},
		Attendance: AttendanceBook{
			"2024-03-04": {
				"d1": {CheckedIn: true, CheckInTime: "08:05"},
			},
		},
		Revision: 7,
	}
}

func TestDocument_JSONRoundTrip(t *testing.T) {
	original := sampleDocument()

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Document
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Equal(t, original, &decoded)
}

func TestDocument_JSONShape(t *testing.T) {
	payload, err := json.Marshal(sampleDocument())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &raw))
	for _, key := range []string{"customers", "dogs", "schedules", "attendance"} {
		require.Contains(t, raw, key)
	}
}

func TestDocument_CloneSharesNothing(t *testing.T) {
	original := sampleDocument()
	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Customers[0].Name = "Bert"
	clone.Dogs = append(clone.Dogs, Dog{ID: "d2"})
	clone.Schedules["2024-W10"]["d1"].Days[0] = "Fredag"
	clone.Schedules["2024-W11"] = WeekSchedule{}
	clone.Attendance["2024-03-04"]["d1"] = AttendanceRecord{CheckedIn: false}

	require.Equal(t, "Anna", original.Customers[0].Name)
	require.Len(t, original.Dogs, 1)
	require.Equal(t, []string{"Måndag", "Onsdag"}, original.Schedules["2024-W10"]["d1"].Days)
	require.NotContains(t, original.Schedules, "2024-W11")
	require.True(t, original.Attendance["2024-03-04"]["d1"].CheckedIn)
}

func TestWeekSchedule_CloneIsDeep(t *testing.T) {
	source := WeekSchedule{
		"d1": {Days: []string{"Måndag"}, DropOffTime: "08:00"},
	}
	copied := source.Clone()

	copied["d1"].Days[0] = "Fredag"
	copied["d2"] = DogSchedule{Days: []string{"Tisdag"}}

	require.Equal(t, []string{"Måndag"}, source["d1"].Days)
	require.NotContains(t, source, "d2")
}

func TestDocument_NormalizeFillsNilCollections(t *testing.T) {
	var doc Document
	doc.Normalize()

	require.NotNil(t, doc.Customers)
	require.NotNil(t, doc.Dogs)
	require.NotNil(t, doc.Schedules)
	require.NotNil(t, doc.Attendance)
}

func TestDog_HasLegacyOwner(t *testing.T) {
	require.True(t, Dog{OwnerName: "Anna"}.HasLegacyOwner())
	require.True(t, Dog{OwnerPhone: "070-1"}.HasLegacyOwner())
	require.False(t, Dog{CustomerID: "c1"}.HasLegacyOwner())
}
