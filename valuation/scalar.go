package valuation

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Total coercion helpers shared by every rule. None of these ever panic or
// return an error: unparseable input degrades to "" / NaN / 0 so a sparse
// record flows through the engine as a neutral, zero-effect case.

// Txt coerces any scalar to trimmed text. nil becomes "".
func Txt(v any) string {
	if v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if math.IsNaN(s) {
			return ""
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

// Num coerces any scalar to float64, stripping thousands separators from
// strings. Missing or unparseable input yields NaN.
func Num(v any) float64 {
	switch n := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
		if s == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// TruthyText reports whether free text asserts a positive flag: any
// non-empty value except the usual negatives counts.
func TruthyText(v any) bool {
	s := strings.ToLower(Txt(v))
	switch s {
	case "", "false", "no", "n", "0", "none":
		return false
	}
	return true
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthsBetween returns calendar months from b to a (a − b), clamped to
// ±120. Either side missing or unparseable yields 0.
func MonthsBetween(a, b string) float64 {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	if !okA || !okB {
		return 0
	}
	m := float64((ta.Year()-tb.Year())*12 + int(ta.Month()) - int(tb.Month()))
	return math.Max(-120, math.Min(120, m))
}

// SafeDelta returns a − b with NaN on either side treated as 0.
func SafeDelta(a, b float64) float64 {
	if math.IsNaN(a) {
		a = 0
	}
	if math.IsNaN(b) {
		b = 0
	}
	return a - b
}

// HasToken reports whether lowered text contains any of the tokens.
func HasToken(s string, tokens []string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// ContainsAny joins a list into one lowered haystack and scans for tokens.
func ContainsAny(items []string, tokens []string) bool {
	return HasToken(joinLower(items), tokens)
}

func joinLower(items []string) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, strings.ToLower(strings.TrimSpace(it)))
	}
	return strings.Join(parts, " | ")
}

// SiteTokenScore counts positive site tokens (+1 each) and negative site
// tokens (−1 each) in free lot-description text.
func SiteTokenScore(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	score := 0.0
	for _, t := range posSiteTokens {
		if strings.Contains(s, t) {
			score++
		}
	}
	for _, t := range negSiteTokens {
		if strings.Contains(s, t) {
			score--
		}
	}
	return score
}

// Median returns the median of the non-NaN values: the middle value for an
// odd count, the mean of the two middle values for an even count, NaN when
// nothing usable remains.
func Median(values []float64) float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN()
	}
	sort.Float64s(clean)
	mid := len(clean) / 2
	if len(clean)%2 == 1 {
		return clean[mid]
	}
	return (clean[mid-1] + clean[mid]) / 2
}
