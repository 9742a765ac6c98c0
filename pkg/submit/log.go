// Package submit provides submission collaborators for forms.
package submit

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/schema"
)

// Mask replaces secret values in logs.
const Mask = "********"

// LogSubmitter logs every submitted value set. Secret fields are masked.
type LogSubmitter struct {
	logger *zap.Logger
	schema *schema.Schema
	form   string
}

var _ form.Submitter = (*LogSubmitter)(nil)

// NewLogSubmitter builds a submitter for the named form. A nil logger
// discards output.
func NewLogSubmitter(logger *zap.Logger, s *schema.Schema, formName string) *LogSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSubmitter{logger: logger, schema: s, form: formName}
}

// Submit logs values at info level.
func (l *LogSubmitter) Submit(_ context.Context, values schema.Values) {
	l.logger.Info("form submitted",
		zap.String("form", l.form),
		zap.Any("values", Redact(l.schema, values)),
	)
}

// Redact returns a copy of values with every secret field masked.
func Redact(s *schema.Schema, values schema.Values) schema.Values {
	out := schema.Clone(values)
	if s == nil {
		return out
	}
	for _, f := range s.Fields() {
		if !f.Secret {
			continue
		}
		if _, ok := schema.Lookup(out, f.Path); ok {
			_ = schema.Assign(out, f.Path, Mask)
		}
	}
	return out
}
