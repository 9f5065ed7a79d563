package narrator

import (
	"context"
	"fmt"
	"strings"

	"numerology_fortune_bot/internal/domain/fortune"
)

// Keywords produces a short text from the number's keywords. It never
// fails and needs no network, so it is the last narrator in every chain.
type Keywords struct{}

func (Keywords) Name() string { return "keywords" }

func (Keywords) Narrate(_ context.Context, r fortune.Reading) (string, error) {
	kw := fortune.Keywords(r.Number)
	if len(kw) == 0 {
		return fmt.Sprintf("Number %d.", r.Number), nil
	}
	return fmt.Sprintf("Number %d. Keywords: %s.", r.Number, strings.Join(kw, ", ")), nil
}
