package particle

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFloat parses a single numeric leaf. Surrounding whitespace is ignored;
// an empty string is an error (a present-but-empty attribute is not a zero).
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// ParseRange parses a range value from particle configuration.
// Supports:
//   - Fixed value: "1500" → min=1500, max=1500
//   - Range: "[0.7 0.9]" → min=0.7, max=0.9
//   - Single bracketed value: "[5]" → min=5, max=5
//
// The order of min and max is preserved as written; rejecting inverted
// ranges is the config validator's job.
func ParseRange(s string) (min, max float64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("empty range")
	}

	if !strings.HasPrefix(s, "[") {
		v, err := ParseFloat(s)
		return v, v, err
	}

	if !strings.HasSuffix(s, "]") {
		return 0, 0, fmt.Errorf("unterminated range %q", s)
	}

	parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
	switch len(parts) {
	case 1:
		v, err := ParseFloat(parts[0])
		return v, v, err
	case 2:
		if min, err = ParseFloat(parts[0]); err != nil {
			return 0, 0, err
		}
		if max, err = ParseFloat(parts[1]); err != nil {
			return 0, 0, err
		}
		return min, max, nil
	default:
		return 0, 0, fmt.Errorf("range %q must have one or two values", s)
	}
}
