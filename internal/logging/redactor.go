package logging

import (
	"strings"
)

const redactedValue = "[REDACTED]"

// defaultSensitiveKeys covers the credential inputs and every secret or
// per-run value of an SRP-6a transcript.
var defaultSensitiveKeys = []string{
	"password",
	"identity_password",
	"salt",
	"verifier",
	"a",
	"b",
	"s",
	"k",
	"x",
	"u",
	"m1",
	"m2",
	"session_key",
	"private_value",
}

// Redactor replaces the values of sensitive field keys. Keys match
// case-insensitively and exactly; nested maps are redacted recursively.
type Redactor struct {
	sensitiveKeys map[string]bool
}

// NewRedactor creates a new Redactor with default sensitive keys.
func NewRedactor() *Redactor {
	r := &Redactor{sensitiveKeys: make(map[string]bool, len(defaultSensitiveKeys))}
	for _, k := range defaultSensitiveKeys {
		r.sensitiveKeys[k] = true
	}
	return r
}

// AddSensitiveKey adds a custom key to the redaction list.
func (r *Redactor) AddSensitiveKey(key string) {
	r.sensitiveKeys[strings.ToLower(key)] = true
}

// RemoveSensitiveKey removes a key from the redaction list.
func (r *Redactor) RemoveSensitiveKey(key string) {
	delete(r.sensitiveKeys, strings.ToLower(key))
}

// IsSensitive reports whether values logged under key are redacted.
func (r *Redactor) IsSensitive(key string) bool {
	return r.sensitiveKeys[strings.ToLower(key)]
}

// RedactFields returns a copy of fields with sensitive values replaced.
func (r *Redactor) RedactFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	redacted := make(map[string]any, len(fields))
	for k, v := range fields {
		if r.IsSensitive(k) {
			redacted[k] = redactedValue
		} else if nested, ok := v.(map[string]any); ok {
			redacted[k] = r.RedactFields(nested)
		} else {
			redacted[k] = v
		}
	}
	return redacted
}
