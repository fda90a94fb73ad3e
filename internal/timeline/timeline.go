// Package timeline turns free-text project timelines into concrete dates.
// Timeline text is never validated at entry, so parsing falls back to a
// caller-supplied default instead of failing.
package timeline

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// DefaultMonths is the span assumed when timeline text contains no number.
const DefaultMonths = 3.0

var monthsPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// ParseMonths extracts the first decimal number from text as a month count.
// When no number is present it returns fallback.
func ParseMonths(text string, fallback float64) float64 {
	match := monthsPattern.FindString(text)
	if match == "" {
		return fallback
	}
	months, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return fallback
	}
	return months
}

// ComputeEndDate adds a possibly fractional month count to start. Whole
// months are calendar months; the fractional remainder is approximated as
// 30-day units, so non-integer counts drift by a few days.
func ComputeEndDate(start time.Time, months float64) time.Time {
	whole := int(math.Floor(months))
	fracDays := int(math.Round((months - math.Floor(months)) * 30))
	return start.AddDate(0, whole, fracDays)
}

// SuggestDueDate places a due date the given percentage of the way through
// the span from start to end, rounded to the nearest whole day. Spans where
// end is not after start are rejected.
func SuggestDueDate(start, end time.Time, percentage int) (time.Time, error) {
	if !end.After(start) {
		return time.Time{}, fmt.Errorf("timeline end %s must be after start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	spanDays := end.Sub(start).Hours() / 24
	offset := int(math.Round(spanDays * float64(percentage) / 100))
	return start.AddDate(0, 0, offset), nil
}

// Span resolves timeline text against a start date, returning the project
// end date. fallback is the month count assumed for unparseable text.
func Span(start time.Time, text string, fallback float64) time.Time {
	return ComputeEndDate(start, ParseMonths(text, fallback))
}
