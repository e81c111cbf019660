// Package pricerange derives the observed price range of a listing collection
// and keeps the two slider cursors of the price facet consistent.
package pricerange

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Kush-Singh-26/immo/catalog/models"
)

// DefaultStep is the step of spans up to 2M
const DefaultStep = 50_000

// Fallback range used when no listing price parses
const (
	DefaultMin = 0
	DefaultMax = 100_000_000
)

var (
	numberRun  = regexp.MustCompile(`\d[\d \x{00a0}\x{202f}.,']*`)
	millionTag = regexp.MustCompile(`(?i)^\s*(?:millions?|m)(?:$|[^a-z0-9²])`)
)

// Bounds is the observed price range of a collection.
type Bounds struct {
	Min  float64 `json:"min" msgpack:"min"`
	Max  float64 `json:"max" msgpack:"max"`
	Step float64 `json:"step" msgpack:"step"`
}

// ParsePrice extracts a number from a locale-formatted price string.
// Currency symbols and words are ignored; an "M" or "million" suffix
// multiplies by one million. ok is false when no number is present.
func ParsePrice(raw string) (value float64, ok bool) {
	loc := numberRun.FindStringIndex(raw)
	if loc == nil {
		return 0, false
	}
	run := strings.TrimRight(raw[loc[0]:loc[1]], " \u00a0\u202f.,'")
	million := millionTag.MatchString(raw[loc[0]+len(run):])

	digits := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\'':
			return -1
		}
		return r
	}, run)

	var n float64
	var err error
	if million {
		n, err = parseDecimal(digits)
		n *= 1_000_000
	} else {
		n, err = parseGrouped(digits)
	}
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// parseDecimal treats the last separator as the decimal point.
func parseDecimal(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", ".")
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = strings.ReplaceAll(s[:i], ".", "") + s[i:]
	}
	return strconv.ParseFloat(s, 64)
}

// parseGrouped treats separators followed by exactly three digits as
// thousands separators and a trailing shorter group as decimals.
func parseGrouped(s string) (float64, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == ',' })
	if len(parts) <= 1 {
		return strconv.ParseFloat(strings.Join(parts, ""), 64)
	}
	last := parts[len(parts)-1]
	if len(last) == 3 {
		return strconv.ParseFloat(strings.Join(parts, ""), 64)
	}
	return strconv.ParseFloat(strings.Join(parts[:len(parts)-1], "")+"."+last, 64)
}

// StepFor picks a slider step from the span of the range.
func StepFor(span float64) float64 {
	switch {
	case span > 30_000_000:
		return 500_000
	case span > 10_000_000:
		return 250_000
	case span > 2_000_000:
		return 100_000
	default:
		return DefaultStep
	}
}

// ComputeBounds returns the min/max over prices that parse. When nothing
// parses the fallback range is used. A degenerate range is widened by one step.
func ComputeBounds(listings []models.Listing, fallback Bounds) Bounds {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, l := range listings {
		v, ok := ParsePrice(l.Price)
		if !ok {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		lo, hi = fallback.Min, fallback.Max
		if lo == 0 && hi == 0 {
			lo, hi = DefaultMin, DefaultMax
		}
	}

	b := Bounds{Min: lo, Max: hi, Step: StepFor(hi - lo)}
	if b.Min == b.Max {
		b.Max += b.Step
	}
	return b
}

// DefaultBounds is the fallback range with its step.
func DefaultBounds() Bounds {
	return Bounds{Min: DefaultMin, Max: DefaultMax, Step: StepFor(DefaultMax - DefaultMin)}
}
