package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Errors
var (
	ErrCredentialsNotFound = errors.New("credentials not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// Session is the credential read from a cookie file. It lives only in
// memory for the duration of the process.
type Session struct {
	Value  string
	Source string
}

// String masks the credential so a Session can be logged safely
func (s Session) String() string {
	return Mask(s.Value)
}

// ReadCookieFile reads a session credential from path. The whole file,
// trimmed of surrounding whitespace, is the credential.
func ReadCookieFile(path string) (*Session, error) {
	if path == "" {
		return nil, fmt.Errorf("cookie file path is empty: %w", ErrCredentialsNotFound)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("cookie file %s: %w", path, ErrCredentialsNotFound)
		}
		return nil, fmt.Errorf("failed to read cookie file: %w", err)
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return nil, fmt.Errorf("cookie file %s is empty: %w", path, ErrInvalidCredentials)
	}
	if strings.ContainsAny(value, "\r\n;") {
		return nil, fmt.Errorf("cookie file %s must hold a single cookie value: %w", path, ErrInvalidCredentials)
	}

	return &Session{Value: value, Source: path}, nil
}

// Mask masks all but the first 4 and last 4 characters of a secret
func Mask(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
