// Package validate rejects malformed input before it touches the store.
// Validation is explicit functions returning structured field errors, not a
// declarative schema.
package validate

import (
	"fmt"
	"strconv"
)

// MinTTLSeconds is the floor for caller-supplied TTLs. Anything shorter
// risks expiring before the second party retrieves the value.
const MinTTLSeconds = 30

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// CreateInput is the validated shape of a create request. Value is a pointer
// so a missing field can be told apart from an empty string; empty values
// are accepted.
type CreateInput struct {
	Value *string
	TTL   string
}

// TTL parses a caller-supplied TTL, given as a decimal integer in seconds.
func TTL(raw string, minSeconds int64) (int64, *FieldError) {
	if raw == "" {
		return 0, &FieldError{Field: "ttl", Message: "is required"}
	}
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &FieldError{Field: "ttl", Message: "must be a decimal integer"}
	}
	if seconds < minSeconds {
		return 0, &FieldError{Field: "ttl", Message: fmt.Sprintf("must be greater than %d seconds", minSeconds)}
	}
	return seconds, nil
}

// ID rejects identifiers containing anything outside [A-Za-z0-9]. Ids are
// used directly as storage keys and in URLs.
func ID(id string) *FieldError {
	if id == "" {
		return &FieldError{Field: "id", Message: "is required"}
	}
	for _, r := range id {
		if !alphanumeric(r) {
			return &FieldError{Field: "id", Message: "contains invalid characters"}
		}
	}
	return nil
}

// CreatePayload validates a full create request and returns the parsed TTL
// in seconds. All failing fields are reported, not just the first.
func CreatePayload(in CreateInput, minTTLSeconds int64) (int64, []FieldError) {
	var errs []FieldError

	if in.Value == nil {
		errs = append(errs, FieldError{Field: "value", Message: "is required"})
	}

	seconds, ferr := TTL(in.TTL, minTTLSeconds)
	if ferr != nil {
		errs = append(errs, *ferr)
	}

	return seconds, errs
}

func alphanumeric(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	return false
}
