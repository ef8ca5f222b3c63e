package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses the raw body of a T#/TIME# literal into
// milliseconds. Units d, h, m, s, ms combine in any order ("1h30m",
// "2d4h30m15s"); fractional values per unit are allowed. The critical rule
// is that "ms" must be matched before "m" or "s" are considered, or
// "500ms" would lex as a 500-minute duration followed by a stray "s".
func ParseDuration(raw string) (int64, error) {
	neg := false
	if strings.HasPrefix(raw, "-") {
		neg = true
		raw = raw[1:]
	}
	if raw == "" {
		return 0, fmt.Errorf("empty TIME literal")
	}

	var totalMs float64
	i, n := 0, len(raw)
	for i < n {
		start := i
		for i < n && (isDigit(raw[i]) || raw[i] == '.') {
			i++
		}
		if i == start {
			return 0, fmt.Errorf("expected a number at offset %d in TIME literal %q", i, raw)
		}
		value, err := strconv.ParseFloat(raw[start:i], 64)
		if err != nil {
			return 0, err
		}

		unitStart := i
		var unitMs float64
		switch {
		case hasFoldPrefix(raw[i:], "ms"):
			unitMs, i = 1, i+2
		case hasFoldPrefix(raw[i:], "d"):
			unitMs, i = 86_400_000, i+1
		case hasFoldPrefix(raw[i:], "h"):
			unitMs, i = 3_600_000, i+1
		case hasFoldPrefix(raw[i:], "m"):
			unitMs, i = 60_000, i+1
		case hasFoldPrefix(raw[i:], "s"):
			unitMs, i = 1_000, i+1
		default:
			return 0, fmt.Errorf("unknown time unit at offset %d in TIME literal %q", unitStart, raw)
		}
		totalMs += value * unitMs
	}

	ms := int64(totalMs)
	if neg {
		ms = -ms
	}
	return ms, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func hasFoldPrefix(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return strings.EqualFold(s[:len(prefix)], prefix)
}

// ParseDate parses a D#/DATE# body "YYYY-MM-DD" into days since 1970-01-01 UTC.
func ParseDate(raw string) (int64, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return 0, fmt.Errorf("invalid DATE literal %q: %w", raw, err)
	}
	days := t.Unix() / 86400
	return days, nil
}

// ParseTimeOfDay parses a TOD#/TIME_OF_DAY# body "HH:MM:SS[.mmm]" into
// milliseconds since midnight.
func ParseTimeOfDay(raw string) (int64, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid TIME_OF_DAY literal %q", raw)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid TIME_OF_DAY literal %q: %w", raw, err)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid TIME_OF_DAY literal %q: %w", raw, err)
	}

	secParts := strings.SplitN(parts[2], ".", 2)
	ss, err := strconv.Atoi(secParts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid TIME_OF_DAY literal %q: %w", raw, err)
	}

	var ms int
	if len(secParts) == 2 {
		frac := secParts[1]
		for len(frac) < 3 {
			frac += "0"
		}
		ms, err = strconv.Atoi(frac[:3])
		if err != nil {
			return 0, fmt.Errorf("invalid TIME_OF_DAY literal %q: %w", raw, err)
		}
	}

	return int64(hh)*3_600_000 + int64(mm)*60_000 + int64(ss)*1_000 + int64(ms), nil
}

// ParseDateAndTime parses a DT#/DATE_AND_TIME# body
// "YYYY-MM-DD-HH:MM:SS[.mmm]" into milliseconds since 1970-01-01 UTC.
func ParseDateAndTime(raw string) (int64, error) {
	parts := strings.SplitN(raw, "-", 4)
	if len(parts) != 4 {
		return 0, fmt.Errorf("invalid DATE_AND_TIME literal %q", raw)
	}
	days, err := ParseDate(parts[0] + "-" + parts[1] + "-" + parts[2])
	if err != nil {
		return 0, err
	}
	ms, err := ParseTimeOfDay(parts[3])
	if err != nil {
		return 0, err
	}
	return days*86_400_000 + ms, nil
}
