package entity

// DogSchedule is one dog's plan for a single week.
type DogSchedule struct {
	Days        []string `bson:"days" json:"days"`
	DropOffTime string   `bson:"dropOffTime,omitempty" json:"dropOffTime,omitempty"`
	PickUpTime  string   `bson:"pickUpTime,omitempty" json:"pickUpTime,omitempty"`
}

// HasDay reports whether the dog is scheduled on the given weekday name.
func (s DogSchedule) HasDay(day string) bool {
	for _, d := range s.Days {
		if d == day {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slice with the receiver.
func (s DogSchedule) Clone() DogSchedule {
	out := s
	out.Days = append([]string(nil), s.Days...)
	return out
}

// WeekSchedule maps dog id to that dog's plan within one week.
type WeekSchedule map[string]DogSchedule

// Clone returns a deep copy. Editing the copy must never reach the original;
// week-to-week copying depends on this.
func (w WeekSchedule) Clone() WeekSchedule {
	if w == nil {
		return nil
	}
	out := make(WeekSchedule, len(w))
	for dogID, plan := range w {
		out[dogID] = plan.Clone()
	}
	return out
}

// ScheduleBook maps week key ("2024-W09") to that week's schedule.
type ScheduleBook map[string]WeekSchedule

// Clone returns a deep copy of every week.
func (b ScheduleBook) Clone() ScheduleBook {
	out := make(ScheduleBook, len(b))
	for weekKey, week := range b {
		out[weekKey] = week.Clone()
	}
	return out
}
