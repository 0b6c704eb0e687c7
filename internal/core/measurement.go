// Package core provides measurement parsing utilities.
//
// Forms hand over measurements typed by people, so both the dot (5.2) and
// the comma (5,2) decimal separators are accepted.
package core

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ParseMeasurement converts a decimal string to a non-negative float.
//
// Examples:
//
//	ParseMeasurement("5.2")  -> 5.2, nil
//	ParseMeasurement("5,2")  -> 5.2, nil
//	ParseMeasurement(" 90 ") -> 90, nil
//	ParseMeasurement("-1")   -> 0, ErrInvalidAmount
func ParseMeasurement(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	for _, part := range parts {
		for _, r := range part {
			if !unicode.IsDigit(r) {
				return 0, ErrInvalidAmount
			}
		}
	}
	if parts[0] == "" && (len(parts) == 1 || parts[1] == "") {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseAgeMonths converts a whole number of months.
func ParseAgeMonths(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAge
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, ErrInvalidAge
	}
	return n, nil
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}
