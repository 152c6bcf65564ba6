package model

// NotSpecified fills lead columns the flow never collected, so the column
// set stays stable between rows.
const NotSpecified = "Not specified"

const (
	IntentBooking = "Book Tour"
	IntentInquiry = "Inquiry"

	LeadStatusConfirmed = "confirmed"
	LeadStatusCancelled = "cancelled"
)

// LeadRecord is the canonical row handed to the persistence collaborator.
// Every column is always populated; the order reported by Columns and Row
// never varies.
type LeadRecord struct {
	Timestamp    string `json:"timestamp" bson:"timestamp" validate:"required"`
	Name         string `json:"name" bson:"name" validate:"required,min=1,max=120"`
	Contact      string `json:"contact" bson:"contact" validate:"required"`
	Intent       string `json:"intent" bson:"intent" validate:"required,oneof='Book Tour' Inquiry"`
	ResourceType string `json:"resource_type" bson:"resource_type" validate:"required"`
	Date         string `json:"date" bson:"date" validate:"required"`
	Time         string `json:"time" bson:"time" validate:"required"`
	PartySize    string `json:"party_size" bson:"party_size" validate:"required"`
	Language     string `json:"language" bson:"language" validate:"required,oneof=EN AR"`
	Notes        string `json:"notes" bson:"notes" validate:"required"`
	Status       string `json:"status" bson:"status" validate:"required,oneof=confirmed cancelled"`
}

// LeadColumns is the stable header set, in persistence order.
var LeadColumns = []string{
	"timestamp", "name", "contact", "intent", "resourceType",
	"date", "time", "partySize", "language", "notes", "status",
}

// Row returns the record's values in LeadColumns order.
func (r LeadRecord) Row() []string {
	return []string{
		r.Timestamp, r.Name, r.Contact, r.Intent, r.ResourceType,
		r.Date, r.Time, r.PartySize, r.Language, r.Notes, r.Status,
	}
}
