// Package formatting converts byte sizes between counts and human-readable
// strings.
package formatting

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var units = []string{
	"B", "KB", "MB",
	"GB", "TB", "PB",
	"EB",
}

var bytesPattern = regexp.MustCompile(`^(\d+\.?\d*)\s*([A-Za-z]*)$`)

// FormatBytes converts a byte count to a human-readable string using base-1024 units.
// Negative precision values are clamped to zero and negative counts keep their sign.
func FormatBytes(n int64, precision int) string {
	if n == 0 {
		return "0 B"
	}
	if n < 0 {
		return "-" + FormatBytes(-n, precision)
	}

	if precision < 0 {
		precision = 0
	}

	f := float64(n)
	k := 1024.0
	i := min(int(math.Floor(math.Log(f)/math.Log(k))), len(units)-1)

	size := f / math.Pow(k, float64(i))
	formatted := strconv.FormatFloat(size, 'f', precision, 64)

	return formatted + " " + units[i]
}

// ParseBytes parses a human-readable byte size string (e.g., "16MB") into a byte count.
// Units B through EB are base-1024 and may be written in either the short form
// ("MB", "M") or the IEC form ("MiB"). A bare number with no unit is treated as bytes.
// Unit matching is case-insensitive and an optional space between number and unit is allowed.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	matches := bytesPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	idx, err := unitIndex(matches[2])
	if err != nil {
		return 0, err
	}

	size := value * math.Pow(1024, float64(idx))
	if size >= math.MaxInt64 {
		return 0, fmt.Errorf("byte size overflows: %q", s)
	}

	return int64(size), nil
}

func unitIndex(unit string) (int, error) {
	u := strings.ToUpper(unit)

	switch {
	case u == "":
		return 0, nil
	case len(u) == 3 && strings.HasSuffix(u, "IB"):
		u = u[:1] + "B"
	case len(u) == 1 && u != "B":
		u += "B"
	}

	idx := slices.Index(units, u)
	if idx == -1 {
		return 0, fmt.Errorf("unknown byte size unit: %q", unit)
	}
	return idx, nil
}
