// Package textfmt holds the small display formatters shared by the
// dashboard view models.
package textfmt

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Initials returns the uppercased first letter of each whitespace-separated
// word: "John Doe" → "JD", "Madonna" → "M", "  " → "".
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// SentenceCase uppercases the first letter and lowercases the rest.
func SentenceCase(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// StageLabel formats a pipeline status for a funnel: only the first hyphen
// becomes a space ("in-progress" → "In progress").
func StageLabel(status string) string {
	return SentenceCase(strings.Replace(status, "-", " ", 1))
}

// StatusLabel turns every hyphen into a space ("follow-up-sent" → "Follow up sent").
func StatusLabel(status string) string {
	return SentenceCase(strings.ReplaceAll(status, "-", " "))
}

// TitleWords turns kebab-case into Title Case With Spaces.
func TitleWords(s string) string {
	// cases.Caser keeps state, so build one per call.
	return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
}

// OneDecimal renders f with exactly one decimal place. NaN and ±Inf render as "0.0".
func OneDecimal(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0.0"
	}
	return strconv.FormatFloat(f, 'f', 1, 64)
}

var relMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
	{D: math.MaxInt64, Format: "%d days %s", DivBy: humanize.Day},
}

// TimeAgo renders then relative to now in minutes, hours or days.
func TimeAgo(then, now time.Time) string {
	return humanize.CustomRelTime(then, now, "ago", "from now", relMagnitudes)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// ParseTimestamp accepts the timestamp shapes the backend emits.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TimeAgoString is TimeAgo for a raw timestamp. Unparseable input yields "".
func TimeAgoString(ts string, now time.Time) string {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return ""
	}
	return TimeAgo(t, now)
}

// DayLabel formats a date as "02 Jan". Unparseable input is returned as-is.
func DayLabel(date string) string {
	t, ok := ParseTimestamp(date)
	if !ok {
		return date
	}
	return t.Format("02 Jan")
}
