package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"marsa/pkg/logger"
	"marsa/pkg/sanitizer"
)

type Config struct {
	Port string

	VerifyToken       string
	WhatsAppToken     string
	WhatsAppPhoneID   string
	WhatsAppAppSecret string

	// AdminPhones holds allow-listed admin identities, normalized to E.164
	// once at load time.
	AdminPhones map[string]bool

	Timezone         string
	Location         *time.Location
	SessionTTL       time.Duration
	SweepInterval    time.Duration
	ReminderLead     time.Duration
	SearchWindowDays int

	Tours     []TourConfig
	Timeslots []string

	LeadsSink        string
	MongoURI         string
	MongoDatabase    string
	MongoConnTimeout time.Duration
	KafkaBrokers     []string
	KafkaLeadsTopic  string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	DedupTTL          time.Duration
	MaxRequestSize    int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		VerifyToken:       getEnvStr(EnvVerifyToken, ""),
		WhatsAppToken:     getEnvStr(EnvWhatsAppToken, ""),
		WhatsAppPhoneID:   getEnvStr(EnvWhatsAppPhoneID, ""),
		WhatsAppAppSecret: getEnvStr(EnvWhatsAppAppSecret, ""),

		AdminPhones: parseAdminPhones(getEnvStr(EnvAdminPhones, "")),

		Timezone:         getEnvStr(EnvTimezone, DefaultTimezone),
		SessionTTL:       getEnvDuration(EnvSessionTTL, DefaultSessionTTL),
		SweepInterval:    getEnvDuration(EnvSweepInterval, DefaultSweepInterval),
		ReminderLead:     getEnvDuration(EnvReminderLead, DefaultReminderLead),
		SearchWindowDays: getEnvNum(EnvSearchWindowDays, DefaultSearchWindowDays),

		Tours:     DefaultTours,
		Timeslots: DefaultTimeslots,

		LeadsSink:        getEnvStr(EnvLeadsSink, DefaultLeadsSink),
		MongoURI:         getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabase:    getEnvStr(EnvMongoDatabase, DefaultMongoDatabase),
		MongoConnTimeout: getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),
		KafkaBrokers:     splitList(getEnvStr(EnvKafkaBrokers, "")),
		KafkaLeadsTopic:  getEnvStr(EnvKafkaLeadsTopic, DefaultKafkaLeadsTopic),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),
		DedupTTL:          getEnvDuration(EnvDedupTTL, DefaultDedupTTL),
		MaxRequestSize:    getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		cfg.Log.Fatal("Invalid canonical timezone", "timezone", cfg.Timezone, "error", err)
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.LeadsSink {
	case SinkLog, SinkMongo, SinkKafka:
	default:
		errs = append(errs, fmt.Sprintf("LeadsSink must be one of log|mongo|kafka, got: %s", cfg.LeadsSink))
	}

	if cfg.LeadsSink == SinkMongo {
		if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errs = append(errs, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
		}
		if cfg.MongoDatabase == "" {
			errs = append(errs, "MongoDatabase cannot be empty")
		}
	}
	if cfg.LeadsSink == SinkKafka && len(cfg.KafkaBrokers) == 0 {
		errs = append(errs, "KafkaBrokers cannot be empty when LeadsSink is kafka")
	}

	if cfg.SessionTTL <= 0 {
		errs = append(errs, fmt.Sprintf("SessionTTL must be positive, got: %s", cfg.SessionTTL))
	}
	if cfg.SweepInterval <= 0 {
		errs = append(errs, fmt.Sprintf("SweepInterval must be positive, got: %s", cfg.SweepInterval))
	}
	if cfg.ReminderLead <= 0 {
		errs = append(errs, fmt.Sprintf("ReminderLead must be positive, got: %s", cfg.ReminderLead))
	}
	if cfg.SearchWindowDays <= 0 {
		errs = append(errs, fmt.Sprintf("SearchWindowDays must be positive, got: %d", cfg.SearchWindowDays))
	}

	if len(cfg.Tours) == 0 {
		errs = append(errs, "Tours catalog cannot be empty")
	}
	for _, tour := range cfg.Tours {
		if tour.Capacity <= 0 {
			errs = append(errs, fmt.Sprintf("Tour %q capacity must be positive, got: %d", tour.Name, tour.Capacity))
		}
	}
	if len(cfg.Timeslots) == 0 {
		errs = append(errs, "Timeslots cannot be empty")
	}

	if cfg.RateLimitRequests <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.DedupTTL <= 0 {
		errs = append(errs, fmt.Sprintf("DedupTTL must be positive, got: %s", cfg.DedupTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 || cfg.ShutdownTimeout <= 0 {
		errs = append(errs, "HTTP timeouts must all be positive")
	}

	if len(errs) > 0 {
		msg := "Configuration validation failed:\n"
		for i, e := range errs {
			msg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"timezone", cfg.Timezone,
		"session_ttl", cfg.SessionTTL,
		"sweep_interval", cfg.SweepInterval,
		"reminder_lead", cfg.ReminderLead,
		"search_window_days", cfg.SearchWindowDays,
		"leads_sink", cfg.LeadsSink,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_leads_topic", cfg.KafkaLeadsTopic,
		"admin_phones", len(cfg.AdminPhones),
		"whatsapp_token_set", cfg.WhatsAppToken != "",
		"whatsapp_secret_set", cfg.WhatsAppAppSecret != "",
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"dedup_ttl", cfg.DedupTTL,
		"tours", len(cfg.Tours),
		"timeslots", len(cfg.Timeslots),
	)
}

// IsAdmin reports whether a normalized sender identity is allow-listed.
func (cfg *Config) IsAdmin(phone string) bool {
	return cfg.AdminPhones[phone]
}

// Tour looks up a catalog entry by resource name.
func (cfg *Config) Tour(name string) (TourConfig, bool) {
	for _, t := range cfg.Tours {
		if t.Name == name {
			return t, true
		}
	}
	return TourConfig{}, false
}

func parseAdminPhones(raw string) map[string]bool {
	admins := make(map[string]bool)
	for _, entry := range splitList(raw) {
		if normalized := sanitizer.NormalizePhone(entry); normalized != "" {
			admins[normalized] = true
		}
	}
	return admins
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
