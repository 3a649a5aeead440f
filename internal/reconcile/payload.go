package reconcile

import (
	"encoding/json"
	"fmt"
	"time"

	"docuflow/internal/domain"
)

// dateLayouts are accepted for date-shaped payload fields, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// parseDate parses a date-shaped payload value. An unparsable value fails the
// whole reconciliation rather than silently storing garbage.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
}

// parseDatePtr parses an optional date field; a nil input stays nil.
func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// decodePayload unmarshals processed_data into a type-specific payload
// struct. A nil or empty payload is an empty patch; malformed JSON is a
// payload error.
func decodePayload(raw json.RawMessage, dst interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	return nil
}

// present reports whether a raw JSON field was delivered with a real value.
// Absent keys and explicit nulls both leave the stored value untouched.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// clampScore bounds a confidence or risk score to 0–100.
func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
