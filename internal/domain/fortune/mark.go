package fortune

import "fmt"

// Mark is the symbolic token attached to a fortune number.
type Mark string

const (
	MarkNone  Mark = ""
	MarkSun   Mark = "sun"   // 1, 8, 11, 22
	MarkBloom Mark = "bloom" // 3, 5, 6
	MarkCloud Mark = "cloud" // 2, 4, 7, 9
)

// MarkFor maps a fortune number to its mark. Numbers outside the
// fortune number set get MarkNone.
func MarkFor(n int) Mark {
	switch n {
	case 1, 8, 11, 22:
		return MarkSun
	case 3, 5, 6:
		return MarkBloom
	case 2, 4, 7, 9:
		return MarkCloud
	default:
		return MarkNone
	}
}

// ParseMark accepts the textual mark names used in table files.
func ParseMark(s string) (Mark, error) {
	switch Mark(s) {
	case MarkNone, MarkSun, MarkBloom, MarkCloud:
		return Mark(s), nil
	default:
		return MarkNone, fmt.Errorf("unknown mark %q", s)
	}
}

func (m Mark) Emoji() string {
	switch m {
	case MarkSun:
		return "☀️"
	case MarkBloom:
		return "🌸"
	case MarkCloud:
		return "☁️"
	default:
		return ""
	}
}
