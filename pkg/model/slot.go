package model

import "fmt"

// DateLayout is the canonical calendar-day format used in slot keys,
// session fields and lead rows.
const DateLayout = "2006-01-02"

// SlotKey identifies one bookable (resource, date, timeslot) combination.
// Date is a calendar day in the canonical timezone, formatted 2006-01-02;
// Timeslot is one of the fixed departure labels ("9:00 AM").
type SlotKey struct {
	Resource string
	Date     string
	Timeslot string
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Resource, k.Date, k.Timeslot)
}

// SlotAvailability is a point-in-time view of a slot's remaining room.
type SlotAvailability struct {
	Key       SlotKey
	Remaining int
	Capacity  int
}
