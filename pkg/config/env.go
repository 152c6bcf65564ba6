package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvVerifyToken       = "VERIFY_TOKEN"
	EnvWhatsAppToken     = "ACCESS_TOKEN"
	EnvWhatsAppPhoneID   = "PHONE_NUMBER_ID"
	EnvWhatsAppAppSecret = "WHATSAPP_APP_SECRET"
	EnvAdminPhones       = "ADMIN_PHONES"

	EnvTimezone         = "CANONICAL_TIMEZONE"
	EnvSessionTTL       = "SESSION_TTL"
	EnvSweepInterval    = "SWEEP_INTERVAL"
	EnvReminderLead     = "REMINDER_LEAD"
	EnvSearchWindowDays = "SEARCH_WINDOW_DAYS"

	EnvLeadsSink        = "LEADS_SINK"
	EnvMongoURI         = "MONGO_URI"
	EnvMongoDatabase    = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout = "MONGO_CONN_TIMEOUT"
	EnvKafkaBrokers     = "KAFKA_BROKERS"
	EnvKafkaLeadsTopic  = "KAFKA_LEADS_TOPIC"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"
	EnvDedupTTL          = "DEDUP_TTL"
	EnvMaxRequestSize    = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
