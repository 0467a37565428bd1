package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Price formats a euro amount for display.
// Example: Price(1234.5) => "€1,234.50"
func Price(amount float64) string {
	cents := int64(math.Round(math.Abs(amount) * 100))
	major := cents / 100
	minor := cents % 100
	out := fmt.Sprintf("€%s.%02d", thousandSep(major), minor)
	if amount < 0 && cents != 0 {
		return "-" + out
	}
	return out
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	return out
}

// Date formats a timestamp in a short display form; zero times render empty.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// DateTime formats a timestamp including the time of day.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04")
}

// Plural returns a count with the singular or plural noun.
// Example: Plural(3, "item", "items") => "3 items"
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Truncate shortens text to at most n runes, appending an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
