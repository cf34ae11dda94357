package helpers

import "strings"

// NullIfEmpty converts a string to a nullable value: empty or all-whitespace
// strings become nil, everything else is trimmed. Profile fields store NULL
// rather than empty strings.
func NullIfEmpty(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NullIfEmptyPtr is NullIfEmpty for optional request fields. A nil pointer
// stays nil so "field absent" and "field cleared" both map to NULL.
func NullIfEmptyPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return NullIfEmpty(*s)
}

// StringOrEmpty dereferences a nullable string for display.
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
