package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultTimezone         = "Asia/Muscat"
	DefaultSessionTTL       = 1 * time.Hour
	DefaultSweepInterval    = 5 * time.Minute
	DefaultReminderLead     = 24 * time.Hour
	DefaultSearchWindowDays = 14

	DefaultLeadsSink        = SinkLog
	DefaultMongoURI         = "mongodb://localhost:27017"
	DefaultMongoDatabase    = "marsa"
	DefaultMongoConnTimeout = 10 * time.Second
	DefaultKafkaLeadsTopic  = "marsa.leads"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute
	DefaultDedupTTL          = 10 * time.Minute
	DefaultMaxRequestSize    = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

const (
	SinkLog   = "log"
	SinkMongo = "mongo"
	SinkKafka = "kafka"
)

// TourConfig is the static catalog entry for one bookable resource.
// Capacity is seats per departure slot.
type TourConfig struct {
	Name     string
	PriceOMR float64
	Capacity int
}

// DefaultTours mirrors the operator's current catalog. Capacity is the
// maximum group size per departure.
var DefaultTours = []TourConfig{
	{Name: "Dolphin Watching", PriceOMR: 25, Capacity: 8},
	{Name: "Snorkeling", PriceOMR: 35, Capacity: 6},
	{Name: "Dhow Cruise", PriceOMR: 40, Capacity: 10},
	{Name: "Fishing Trip", PriceOMR: 50, Capacity: 4},
}

// DefaultTimeslots are the fixed daily departure labels, in day order.
var DefaultTimeslots = []string{
	"8:00 AM", "9:00 AM", "10:00 AM", "2:00 PM", "4:00 PM", "6:00 PM",
}
