package fortune

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidEmail = errors.New("invalid email address")

// Segments are the three slices of an address that drive the category
// numbers. All of them are lower-cased.
type Segments struct {
	Local       string // before the first '@'
	DomainLabel string // first '.'-separated label of the domain
	Compact     string // whole address reduced to [a-z0-9]
}

// ParseEmail splits an address into its segments. The address must
// contain an '@' and a non-empty first domain label; anything else about
// its shape is left to the caller. When the address holds more than one
// '@' the domain is the text between the first and the second one.
func ParseEmail(email string) (Segments, error) {
	lower := strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(lower, "@")
	if len(parts) < 2 {
		return Segments{}, fmt.Errorf("%w: missing '@' in %q", ErrInvalidEmail, email)
	}

	label, _, _ := strings.Cut(parts[1], ".")
	if label == "" {
		return Segments{}, fmt.Errorf("%w: no domain label in %q", ErrInvalidEmail, email)
	}

	return Segments{
		Local:       parts[0],
		DomainLabel: label,
		Compact:     compact(lower),
	}, nil
}

func compact(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
