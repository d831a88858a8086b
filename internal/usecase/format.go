package usecase

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rvc-001/planning-sub000/internal/domain/entity"
)

// The read endpoint serializes date cells as a textual token with a
// zero-based month: Date(2024,0,15) is 15 January 2024, optionally with a
// trailing hour,minute,second triple.
var dateTokenPattern = regexp.MustCompile(`^Date\(\s*(-?\d+(?:\s*,\s*-?\d+)*)\s*\)$`)

// ParseDateToken decodes a Date(...) token. A non-matching or malformed
// token reports ok=false and the caller falls back to the raw string.
func ParseDateToken(raw string) (time.Time, bool) {
	match := dateTokenPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return time.Time{}, false
	}

	parts := strings.Split(match[1], ",")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		nums = append(nums, n)
	}
	if len(nums) < 3 {
		return time.Time{}, false
	}

	hour, minute, second := 0, 0, 0
	if len(nums) >= 6 {
		hour, minute, second = nums[3], nums[4], nums[5]
	} else if len(nums) >= 5 {
		hour, minute = nums[3], nums[4]
	} else if len(nums) == 4 {
		hour = nums[3]
	}
	return time.Date(nums[0], time.Month(nums[1]+1), nums[2], hour, minute, second, 0, time.UTC), true
}

// FormatDate renders dd/MM/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDateTime renders dd/MM/yyyy HH:mm:ss.
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04:05")
}

// DisplayDate converts a date cell value to its display string: decoded
// token when it parses, raw string otherwise.
func DisplayDate(v any, withTime bool) string {
	raw := entity.CoerceString(v)
	t, ok := ParseDateToken(raw)
	if !ok {
		return raw
	}
	if withTime {
		return FormatDateTime(t)
	}
	return FormatDate(t)
}

var clockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

// NormalizeMachineHours tolerates the four encodings the machine-hours
// column shows up in: an already formatted HH:MM:SS string, the Date(...)
// token (trailing h/m/s triple), a native time value, or a decimal number
// of hours. Anything else passes through unmodified. The sheet's cell
// formatting is inconsistent, so all four branches matter.
func NormalizeMachineHours(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		return fmt.Sprintf("%02d:%02d:%02d", val.Hour(), val.Minute(), val.Second())
	case float64:
		return decimalHoursToClock(val)
	case int:
		return decimalHoursToClock(float64(val))
	case string:
		trimmed := strings.TrimSpace(val)
		if clockPattern.MatchString(trimmed) {
			return trimmed
		}
		if t, ok := ParseDateToken(trimmed); ok {
			return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return decimalHoursToClock(f)
		}
		return val
	default:
		return entity.CoerceString(v)
	}
}

// decimalHoursToClock converts fractional hours via floor cascades:
// 8.5 -> 08:30:00.
func decimalHoursToClock(hours float64) string {
	if hours < 0 {
		return entity.CoerceString(hours)
	}
	h := math.Floor(hours)
	minFloat := (hours - h) * 60
	m := math.Floor(minFloat)
	s := math.Floor((minFloat - m) * 60)
	return fmt.Sprintf("%02d:%02d:%02d", int(h), int(m), int(s))
}
