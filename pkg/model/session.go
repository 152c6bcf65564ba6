package model

import "time"

type State string

const (
	StateInitial        State = "INITIAL"
	StateMenu           State = "MENU"
	StateAwaitName      State = "AWAIT_NAME"
	StateAwaitContact   State = "AWAIT_CONTACT"
	StateAwaitResource  State = "AWAIT_RESOURCE"
	StateAwaitPartySize State = "AWAIT_PARTY_SIZE"
	StateAwaitDate      State = "AWAIT_DATE"
	StateAwaitTime      State = "AWAIT_TIME"
	StateAwaitConfirm   State = "AWAIT_CONFIRM"
	StateCompleted      State = "COMPLETED"
	StateCancelled      State = "CANCELLED"

	StateInquiryAwaitName    State = "INQUIRY_AWAIT_NAME"
	StateInquiryAwaitContact State = "INQUIRY_AWAIT_CONTACT"
	StateInquiryAwaitTopic   State = "INQUIRY_AWAIT_TOPIC"
	StateInquiryComplete     State = "INQUIRY_COMPLETE"
)

func (s State) Terminal() bool {
	return s == StateCancelled || s == StateInquiryComplete
}

type FlowKind string

const (
	FlowBooking FlowKind = "booking"
	FlowInquiry FlowKind = "inquiry"
	FlowAdmin   FlowKind = "admin"
)

type FieldKey string

const (
	FieldName      FieldKey = "name"
	FieldContact   FieldKey = "contact"
	FieldResource  FieldKey = "resourceType"
	FieldPartySize FieldKey = "partySize"
	FieldDate      FieldKey = "date"
	FieldTime      FieldKey = "time"
	FieldTopic     FieldKey = "topic"
)

// FieldOrder is the canonical collection order of booking answers. It keeps
// iteration over Session.Fields deterministic for summaries and lead rows.
var FieldOrder = []FieldKey{
	FieldName,
	FieldContact,
	FieldResource,
	FieldPartySize,
	FieldDate,
	FieldTime,
	FieldTopic,
}

// Reservation is a capacity hold taken against the availability ledger.
// Confirmed becomes true when the owning booking reaches COMPLETED;
// unconfirmed holds are rolled back when the session is abandoned.
type Reservation struct {
	Slot      SlotKey
	PartySize int
	Confirmed bool
}

// Session is the server-side state of one party's dialogue. It is owned and
// mutated exclusively by the session store; everything else requests patches.
type Session struct {
	ID             string
	State          State
	FlowKind       FlowKind
	Language       string
	Fields         map[FieldKey]string
	Reservation    *Reservation
	ReminderID     string
	CreatedAt      time.Time
	LastActivityAt time.Time
	ExpiresAt      time.Time
}

func (s *Session) Field(key FieldKey) string {
	if s.Fields == nil {
		return ""
	}
	return s.Fields[key]
}

// SessionPatch describes a requested mutation. Nil pointers leave the
// corresponding attribute untouched; Fields entries are merged in.
type SessionPatch struct {
	State            *State
	FlowKind         *FlowKind
	Language         *string
	Fields           map[FieldKey]string
	Reservation      *Reservation
	ClearReservation bool
	ReminderID       *string
}

func StatePtr(s State) *State          { return &s }
func FlowPtr(f FlowKind) *FlowKind     { return &f }
func StringPtr(s string) *string       { return &s }
