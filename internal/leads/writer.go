// Package leads persists finished conversations. The sink is chosen by
// configuration: structured log (default), a MongoDB collection, or a
// Kafka topic for downstream consumers. Every sink sees only validated
// records.
package leads

import (
	"context"

	"marsa/pkg/logger"
	"marsa/pkg/model"
)

// Writer persists one lead row.
type Writer interface {
	Write(ctx context.Context, record model.LeadRecord) error
}

// LogWriter emits leads as structured log lines. It is the default sink
// and the fallback for local development.
type LogWriter struct {
	log *logger.Logger
}

func NewLogWriter(log *logger.Logger) *LogWriter {
	return &LogWriter{log: log}
}

func (w *LogWriter) Write(_ context.Context, record model.LeadRecord) error {
	w.log.Info("Lead captured",
		"timestamp", record.Timestamp,
		"name", record.Name,
		"contact", record.Contact,
		"intent", record.Intent,
		"resource_type", record.ResourceType,
		"date", record.Date,
		"time", record.Time,
		"party_size", record.PartySize,
		"language", record.Language,
		"notes", record.Notes,
		"status", record.Status,
	)
	return nil
}
