package log

import "time"

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldCollection  = "collection"
	FieldRecordID    = "record_id"
	FieldFeedingType = "feeding_type"
	FieldAmountMl    = "amount_ml"
	FieldWeightKg    = "weight_kg"
	FieldPeriod      = "period"
	FieldCount       = "count"
	FieldBackend     = "backend"
	FieldPath        = "path"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentRecords = "records"
	ComponentTracker = "tracker"
	ComponentBackend = "backend"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpDelete = "delete"
	OpReport = "report"
	OpExport = "export"
	OpRender = "render"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithRecord adds the collection and id of a record
func (f LogFields) WithRecord(collection, id string) LogFields {
	f[FieldCollection] = collection
	f[FieldRecordID] = id
	return f
}

// WithPeriod adds the statistics period
func (f LogFields) WithPeriod(period string) LogFields {
	f[FieldPeriod] = period
	return f
}

// WithDuration adds the elapsed time since start in milliseconds
func (f LogFields) WithDuration(start time.Time) LogFields {
	f[FieldDuration] = time.Since(start).Milliseconds()
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
