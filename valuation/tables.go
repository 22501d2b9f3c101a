package valuation

import (
	"strconv"
	"strings"
)

// Static keyword tables consulted by the rules. These are deliberately kept
// as data so policy tuning never touches rule logic. Ordered slices, not
// maps: containment lookups are first-match-wins, so entry order is part of
// the contract (e.g. "above average" must be tried before "average").

type ordinalEntry struct {
	keyword string
	value   int
}

// Quality (Q) scale, 2–6, lower = better.
var qualityTable = []ordinalEntry{
	{"luxury", 2},
	{"custom", 3},
	{"excellent", 2},
	{"above average", 3},
	{"average", 4},
	{"economy", 5},
	{"basic", 6},
}

// Condition (C) scale, 2–6, lower = better.
var conditionTable = []ordinalEntry{
	{"new", 2},
	{"excellent", 2},
	{"renovated", 3},
	{"updated", 3},
	{"good", 3},
	{"average", 4},
	{"typical", 4},
	{"outdated", 5},
	{"fair", 5},
	{"poor", 6},
}

var posSiteTokens = []string{"cul-de-sac", "park", "view", "greenbelt", "waterfront", "backs to open"}
var negSiteTokens = []string{"busy road", "highway", "arterial", "rail", "industrial", "power line", "slope", "steep"}

// "skylight" and "skylight tube" both stay listed: containment scoring
// counts text like "skylight tube" twice.
var premiumInteriorTokens = []string{"cathedral", "vaulted", "open beam", "skylight", "skylight tube"}

var fireplaceTokens = []string{"fireplace", "fire place", "woodburn"}

// defaultOrdinal is the mid-scale rating assumed when no keyword matches.
const defaultOrdinal = 4

// ordinalFromText maps a free-text label to an ordinal rating. An explicit
// "Q3"/"C3" prefix form is honored first; otherwise the table is scanned in
// priority order and the first contained keyword wins.
func ordinalFromText(text, prefix string, table []ordinalEntry) (int, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, prefix) {
		if n, err := strconv.Atoi(upper[len(prefix):]); err == nil {
			return n, true
		}
	}
	lower := strings.ToLower(s)
	for _, e := range table {
		if strings.Contains(lower, e.keyword) {
			return e.value, true
		}
	}
	return 0, false
}

// QualityRating maps style/quality text onto the Q scale, defaulting to the
// mid-scale value when nothing matches.
func QualityRating(text string) int {
	if q, ok := ordinalFromText(text, "Q", qualityTable); ok {
		return q
	}
	return defaultOrdinal
}

// ConditionRating maps condition text onto the C scale, defaulting to the
// mid-scale value when nothing matches.
func ConditionRating(text string) int {
	if c, ok := ordinalFromText(text, "C", conditionTable); ok {
		return c
	}
	return defaultOrdinal
}
