package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Collection names as they appear in the key-value medium.
const (
	GrowthCollection  = "userRecords"
	FeedingCollection = "feedingRecords"
)

const (
	BreastMilk FeedingType = "breastMilk"
	Formula    FeedingType = "formula"
	SolidFood  FeedingType = "solidFood"
)

type (
	// FeedingType is the closed set of feeding kinds.
	FeedingType string

	// Record is what every stored collection element exposes.
	Record interface {
		RecordID() string
		Timestamp() time.Time
		Validate() error
	}

	GrowthRecord struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		AgeMonths  int       `json:"ageMonths"`
		WeightKg   float64   `json:"weightKg"`
		HeightCm   *float64  `json:"heightCm,omitempty"`
		RecordedAt time.Time `json:"recordedAt"`
	}

	FeedingEvent struct {
		ID         string      `json:"id"`
		Type       FeedingType `json:"type"`
		AmountMl   *float64    `json:"amountMl,omitempty"`
		Notes      string      `json:"notes,omitempty"`
		OccurredAt time.Time   `json:"occurredAt"`
	}
)

var (
	ErrEmptyID          = errors.New("empty id")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidAge       = errors.New("invalid age")
	ErrInvalidWeight    = errors.New("invalid weight")
	ErrInvalidHeight    = errors.New("invalid height")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrMissingAmount    = errors.New("formula feeding requires an amount")
	ErrUnknownType      = errors.New("unknown feeding type")
	ErrMissingTimestamp = errors.New("timestamp cannot be zero")
)

// ValidationError reports an input field rejected before any store write.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// FeedingTypes lists every feeding type in display order.
func FeedingTypes() []FeedingType {
	return []FeedingType{BreastMilk, Formula, SolidFood}
}

// IsValid reports whether t is one of the known feeding types.
func (t FeedingType) IsValid() bool {
	switch t {
	case BreastMilk, Formula, SolidFood:
		return true
	default:
		return false
	}
}

func (t FeedingType) String() string {
	return string(t)
}

// Label returns the English display label; render translates it.
func (t FeedingType) Label() string {
	switch t {
	case BreastMilk:
		return "Breast milk"
	case Formula:
		return "Formula"
	case SolidFood:
		return "Solid food"
	default:
		return "Other"
	}
}

// ParseFeedingType accepts the canonical tags, their kebab/snake spellings
// and the tags written by the first version of the app.
func ParseFeedingType(s string) (FeedingType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breastmilk", "breast-milk", "breast_milk", "leite_materno":
		return BreastMilk, nil
	case "formula":
		return Formula, nil
	case "solidfood", "solid-food", "solid_food", "alimento":
		return SolidFood, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

func (t FeedingType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
	return []byte(t), nil
}

func (t *FeedingType) UnmarshalText(b []byte) error {
	parsed, err := ParseFeedingType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (r GrowthRecord) RecordID() string     { return r.ID }
func (r GrowthRecord) Timestamp() time.Time { return r.RecordedAt }

func (e FeedingEvent) RecordID() string     { return e.ID }
func (e FeedingEvent) Timestamp() time.Time { return e.OccurredAt }

// HasHeight reports whether the record carries a height measurement.
func (r GrowthRecord) HasHeight() bool {
	return r.HeightCm != nil
}

// FormulaMl returns the formula amount, or false when the event is not a
// formula feeding or carries no amount.
func (e FeedingEvent) FormulaMl() (float64, bool) {
	if e.Type != Formula || e.AmountMl == nil {
		return 0, false
	}
	return *e.AmountMl, true
}

func (r GrowthRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return invalid("id", ErrEmptyID)
	}
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name", ErrEmptyName)
	}
	if len(r.Name) > 100 {
		return invalid("name", errors.New("name too long (max 100 characters)"))
	}
	if r.AgeMonths < 0 {
		return invalid("ageMonths", ErrInvalidAge)
	}
	if r.WeightKg <= 0 {
		return invalid("weightKg", ErrInvalidWeight)
	}
	if r.HeightCm != nil && *r.HeightCm <= 0 {
		return invalid("heightCm", ErrInvalidHeight)
	}
	if r.RecordedAt.IsZero() {
		return invalid("recordedAt", ErrMissingTimestamp)
	}
	return nil
}

func (e FeedingEvent) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return invalid("id", ErrEmptyID)
	}
	if !e.Type.IsValid() {
		return invalid("type", ErrUnknownType)
	}
	if e.Type == Formula && e.AmountMl == nil {
		return invalid("amountMl", ErrMissingAmount)
	}
	if e.AmountMl != nil && *e.AmountMl < 0 {
		return invalid("amountMl", ErrInvalidAmount)
	}
	if len(e.Notes) > 500 {
		return invalid("notes", errors.New("notes too long (max 500 characters)"))
	}
	if e.OccurredAt.IsZero() {
		return invalid("occurredAt", ErrMissingTimestamp)
	}
	return nil
}

// Normalize drops an amount carried by a non-formula event so the stored
// record keeps amountMl present only for formula feedings.
func (e FeedingEvent) Normalize() FeedingEvent {
	if e.Type != Formula {
		e.AmountMl = nil
	}
	e.Notes = strings.TrimSpace(e.Notes)
	return e
}

// Float returns a pointer to v, for optional measurement fields.
func Float(v float64) *float64 {
	return &v
}
