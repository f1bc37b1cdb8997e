package entity

// AttendanceRecord is one dog's check-in state for a single day.
type AttendanceRecord struct {
	CheckedIn    bool   `bson:"checkedIn" json:"checkedIn"`
	CheckInTime  string `bson:"checkInTime,omitempty" json:"checkInTime,omitempty"`
	CheckedOut   bool   `bson:"checkedOut" json:"checkedOut"`
	CheckOutTime string `bson:"checkOutTime,omitempty" json:"checkOutTime,omitempty"`
}

// DayAttendance maps dog id to that dog's record for one date.
type DayAttendance map[string]AttendanceRecord

// Clone returns a copy independent of the receiver.
func (d DayAttendance) Clone() DayAttendance {
	if d == nil {
		return nil
	}
	out := make(DayAttendance, len(d))
	for dogID, rec := range d {
		out[dogID] = rec
	}
	return out
}

// AttendanceBook maps date key ("2024-03-04") to that day's records.
type AttendanceBook map[string]DayAttendance

// Clone returns a deep copy of every day.
func (b AttendanceBook) Clone() AttendanceBook {
	out := make(AttendanceBook, len(b))
	for dateKey, day := range b {
		out[dateKey] = day.Clone()
	}
	return out
}
