package model

type EventKind string

const (
	EventText            EventKind = "text"
	EventListSelection   EventKind = "listSelection"
	EventButtonSelection EventKind = "buttonSelection"
)

// InboundEvent is one normalized message from the messaging gateway.
// SenderID is already canonicalized (E.164) at ingress; MessageID is the
// platform delivery ID used for duplicate suppression.
type InboundEvent struct {
	SenderID       string    `json:"sender_id"`
	MessageID      string    `json:"message_id"`
	Kind           EventKind `json:"kind"`
	Text           string    `json:"text,omitempty"`
	SelectionID    string    `json:"selection_id,omitempty"`
	SelectionTitle string    `json:"selection_title,omitempty"`
}
