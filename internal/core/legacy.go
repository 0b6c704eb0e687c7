package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// The first version of the app stored growth records as
// {id, name, age, weight, height, date} and feedings as
// {id, type, amount, notes, timestamp}. Both shapes decode into the current
// types; the current field wins when both are present. Records are always
// written back in the current shape.

// looseNumber decodes a JSON number, a numeric string or null.
type looseNumber struct {
	value float64
	set   bool
}

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
		if s == "" {
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %s", b)
	}
	n.value, n.set = v, true
	return nil
}

func (r *GrowthRecord) UnmarshalJSON(b []byte) error {
	type plain GrowthRecord
	var aux struct {
		plain
		Age    looseNumber `json:"age"`
		Weight looseNumber `json:"weight"`
		Height looseNumber `json:"height"`
		Date   time.Time   `json:"date"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	rec := GrowthRecord(aux.plain)
	if rec.AgeMonths == 0 && aux.Age.set {
		rec.AgeMonths = int(math.Floor(aux.Age.value))
	}
	if rec.WeightKg == 0 && aux.Weight.set {
		rec.WeightKg = aux.Weight.value
	}
	if rec.HeightCm == nil && aux.Height.set {
		rec.HeightCm = Float(aux.Height.value)
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = aux.Date
	}
	*r = rec
	return nil
}

// UnmarshalJSON also normalizes the event, since the first version stored
// an amount of 0 on solid food feedings.
func (e *FeedingEvent) UnmarshalJSON(b []byte) error {
	type plain FeedingEvent
	var aux struct {
		plain
		Amount    looseNumber `json:"amount"`
		Timestamp time.Time   `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	ev := FeedingEvent(aux.plain)
	if ev.AmountMl == nil && aux.Amount.set {
		ev.AmountMl = Float(aux.Amount.value)
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = aux.Timestamp
	}
	*e = ev.Normalize()
	return nil
}
