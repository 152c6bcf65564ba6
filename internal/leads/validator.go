package leads

import (
	"context"

	"github.com/go-playground/validator/v10"

	"marsa/pkg/errors"
	"marsa/pkg/model"
)

var validate = validator.New()

// ValidateRecord checks a lead row against its struct tags.
func ValidateRecord(record model.LeadRecord) error {
	if err := validate.Struct(record); err != nil {
		details := make(map[string]any)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
		}
		return errors.Validation("lead record failed validation", details)
	}
	return nil
}

// ValidatingWriter rejects malformed records before they reach the sink.
type ValidatingWriter struct {
	next Writer
}

func NewValidatingWriter(next Writer) *ValidatingWriter {
	return &ValidatingWriter{next: next}
}

func (w *ValidatingWriter) Write(ctx context.Context, record model.LeadRecord) error {
	if err := ValidateRecord(record); err != nil {
		return err
	}
	return w.next.Write(ctx, record)
}
