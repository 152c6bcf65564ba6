package model

// Command is a side effect requested by the engine and executed by the
// dispatcher after the session lock is released.
type Command interface {
	CommandName() string
}

// InteractiveSpec is an opaque structured payload (list or button menu)
// forwarded verbatim to the messaging collaborator.
type InteractiveSpec struct {
	Type   string             `json:"type"`
	Header *InteractiveHeader `json:"header,omitempty"`
	Body   InteractiveBody    `json:"body"`
	Action InteractiveAction  `json:"action"`
}

type InteractiveHeader struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type InteractiveBody struct {
	Text string `json:"text"`
}

type InteractiveAction struct {
	Button   string               `json:"button,omitempty"`
	Sections []InteractiveSection `json:"sections,omitempty"`
	Buttons  []InteractiveButton  `json:"buttons,omitempty"`
}

type InteractiveSection struct {
	Title string           `json:"title"`
	Rows  []InteractiveRow `json:"rows"`
}

type InteractiveRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type InteractiveButton struct {
	Type  string          `json:"type"`
	Reply InteractiveRow  `json:"reply"`
}

type SendMessage struct {
	To          string
	Body        string
	Interactive *InteractiveSpec
}

func (SendMessage) CommandName() string { return "SendMessage" }

type PersistLead struct {
	Record LeadRecord
}

func (PersistLead) CommandName() string { return "PersistLead" }

type ScheduleReminder struct {
	Job ReminderJob
}

func (ScheduleReminder) CommandName() string { return "ScheduleReminder" }

type CancelReminder struct {
	JobID string
}

func (CancelReminder) CommandName() string { return "CancelReminder" }

type ReleaseCapacity struct {
	Slot      SlotKey
	PartySize int
}

func (ReleaseCapacity) CommandName() string { return "ReleaseCapacity" }
