package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidEmail = errors.New("invalid email")

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email trims and lowercases an address and checks it has a local@domain.tld shape.
func Email(s string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(s))
	if !reEmail.MatchString(email) {
		return "", fmt.Errorf("%w: %q is not a valid email address", ErrInvalidEmail, s)
	}

	return email, nil
}
