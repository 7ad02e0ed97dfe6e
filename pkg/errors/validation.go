package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// entityIDRegex matches identifiers that can be embedded unquoted in Mermaid
// output and quoted in DOT output without escaping.
var entityIDRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.:\-]*$`)

// ValidateEntityID validates a schema, dataset or ingest node identifier.
//
// The rules keep ids safe for the text exporters:
//   - No empty ids
//   - Maximum length of 256 characters
//   - No control characters
//   - Only letters, digits, '_', '.', ':' and '-'
func ValidateEntityID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidEntity, "entity id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidEntity, "entity id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidEntity, "entity id contains invalid control characters")
		}
	}

	if !entityIDRegex.MatchString(id) {
		return New(ErrCodeInvalidEntity, "invalid entity id: %q", id)
	}

	return nil
}

// ValidateEntityName validates a display name. Names are free text but must
// not be empty or contain characters that break quoted labels.
func ValidateEntityName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidEntity, "entity name cannot be empty")
	}
	for _, r := range name {
		if r == '"' || unicode.IsControl(r) {
			return New(ErrCodeInvalidEntity, "entity name contains invalid characters: %q", name)
		}
	}
	return nil
}

// ValidateRedisURL validates a redis connection URL.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "redis URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidInput, "redis URL must use redis or rediss scheme")
	}
	return nil
}
