package user

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidCursor is returned when a cursor token cannot be decoded.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor marks the last user ID seen by a client.
// On the wire it is URL-safe base64 of the decimal ID, which clients treat as opaque.
type Cursor struct {
	LastID int64
}

// Encode returns the opaque token for the cursor.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(c.LastID, 10)))
}

// String implements fmt.Stringer.
func (c Cursor) String() string {
	return c.Encode()
}

// ParseCursor decodes a token produced by Encode. Padded standard base64 is
// accepted too so tokens issued by the legacy service keep working.
func ParseCursor(token string) (Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Cursor{}, ErrInvalidCursor
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		raw, err = base64.StdEncoding.DecodeString(token)
		if err != nil {
			return Cursor{}, ErrInvalidCursor
		}
	}

	s := string(raw)
	// ParseInt tolerates a leading sign; only plain digits are ever encoded.
	if s == "" || s[0] == '+' || s[0] == '-' {
		return Cursor{}, ErrInvalidCursor
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}

	return Cursor{LastID: id}, nil
}
