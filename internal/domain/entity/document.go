package entity

// Document is the whole per-account aggregate: every collection the service
// owns, loaded and replaced as one unit. Revision increases by one on each
// committed write so future multi-device conflict detection has a hook.
type Document struct {
	Customers  []Customer     `bson:"customers" json:"customers"`
	Dogs       []Dog          `bson:"dogs" json:"dogs"`
	Schedules  ScheduleBook   `bson:"schedules" json:"schedules"`
	Attendance AttendanceBook `bson:"attendance" json:"attendance"`
	Revision   int64          `bson:"revision" json:"revision"`
}

// NewDocument returns an empty document with all four collections initialized.
func NewDocument() *Document {
	return &Document{
		Customers:  []Customer{},
		Dogs:       []Dog{},
		Schedules:  ScheduleBook{},
		Attendance: AttendanceBook{},
	}
}

// Normalize replaces nil collections with empty ones. Decoded documents from
// either backend pass through here so callers never see a nil map.
func (d *Document) Normalize() {
	if d.Customers == nil {
		d.Customers = []Customer{}
	}
	if d.Dogs == nil {
		d.Dogs = []Dog{}
	}
	if d.Schedules == nil {
		d.Schedules = ScheduleBook{}
	}
	if d.Attendance == nil {
		d.Attendance = AttendanceBook{}
	}
}

// Clone returns a deep copy sharing no mutable structure with the receiver.
func (d *Document) Clone() *Document {
	out := &Document{
		Customers:  append([]Customer{}, d.Customers...),
		Dogs:       append([]Dog{}, d.Dogs...),
		Schedules:  d.Schedules.Clone(),
		Attendance: d.Attendance.Clone(),
		Revision:   d.Revision,
	}
	return out
}

// CustomerByID returns the customer with the given id, if present.
func (d *Document) CustomerByID(id string) (Customer, bool) {
	for _, c := range d.Customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}

// DogByID returns the dog with the given id, if present.
func (d *Document) DogByID(id string) (Dog, bool) {
	for _, dog := range d.Dogs {
		if dog.ID == id {
			return dog, true
		}
	}
	return Dog{}, false
}
