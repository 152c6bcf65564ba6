package model

import "time"

type ReminderStatus string

const (
	ReminderScheduled ReminderStatus = "scheduled"
	ReminderFired     ReminderStatus = "fired"
	ReminderCancelled ReminderStatus = "cancelled"
)

// ReminderPayload is the booking summary delivered when the job fires.
type ReminderPayload struct {
	Name      string
	Contact   string
	Resource  string
	Date      string
	Timeslot  string
	PartySize int
	Language  string
}

// ReminderJob is a one-shot deferred message. Jobs live only in process
// memory: a restart drops every pending job.
type ReminderJob struct {
	ID        string
	SessionID string
	FireAt    time.Time
	Payload   ReminderPayload
	Status    ReminderStatus
}
