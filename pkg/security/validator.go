package security

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxSearchQueryLength is the longest search prefix accepted, in characters.
	MaxSearchQueryLength = 100

	// LikeEscapeChar escapes wildcards in LIKE patterns. It is not special inside
	// string literals on MySQL, SQLite or PostgreSQL, unlike the backslash.
	LikeEscapeChar = '!'
)

var (
	// ErrSearchQueryTooLong is returned for prefixes over MaxSearchQueryLength.
	ErrSearchQueryTooLong = errors.New("search query too long")
	// ErrSearchQueryInvalid is returned for prefixes containing control characters.
	ErrSearchQueryInvalid = errors.New("search query contains invalid characters")
)

// ValidateSearchQuery trims a search prefix and checks it is safe to bind.
// An empty result means there is nothing to search for.
func ValidateSearchQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	if !utf8.ValidString(query) {
		return "", ErrSearchQueryInvalid
	}

	if utf8.RuneCountInString(query) > MaxSearchQueryLength {
		return "", ErrSearchQueryTooLong
	}

	for _, r := range query {
		if unicode.IsControl(r) {
			return "", ErrSearchQueryInvalid
		}
	}

	return query, nil
}

// EscapeLike escapes LIKE wildcards so the value matches literally.
// Use it together with `ESCAPE '!'` in the statement.
func EscapeLike(value string) string {
	if value == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(value) + 4)
	for _, r := range value {
		switch r {
		case '%', '_', LikeEscapeChar:
			b.WriteRune(LikeEscapeChar)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PrefixPattern builds the LIKE pattern matching values that start with prefix.
func PrefixPattern(prefix string) string {
	return EscapeLike(prefix) + "%"
}
