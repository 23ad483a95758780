// Package classifier assigns markets to monitored categories with keyword
// scoring over the market title and slug. It is pure: no I/O, no state, and
// missing fields are treated as empty strings rather than errors.
package classifier

import (
	"strings"
)

type Category string

const (
	CategorySports   Category = "sports"
	CategoryPolitics Category = "politics"
	CategoryOther    Category = "other"
)

var sportsKeywords = []string{
	"nfl", "nba", "mlb", "nhl", "ufc", "super bowl", "superbowl",
	"world cup", "world series", "champions league", "premier league",
	"playoff", "finals", "championship", "grand slam", "heisman",
	"soccer", "football", "basketball", "baseball", "hockey", "tennis",
	"golf", "boxing", "olympic", "grand prix", "f1",
}

var politicsKeywords = []string{
	"election", "president", "presidential", "senate", "senator",
	"congress", "governor", "mayor", "parliament", "prime minister",
	"democrat", "republican", "primary", "nominee", "nomination",
	"impeach", "supreme court", "referendum", "legislation", "veto",
	"cabinet", "electoral", "ballot", "trump", "biden", "harris",
}

// Classify scores the market's title and slug against each category's keyword
// set and returns the category with the strictly highest match count. A tie,
// or no match at all, classifies as CategoryOther.
func Classify(title, slug string) Category {
	text := strings.ToLower(title + " " + slug)

	sports := score(text, sportsKeywords)
	politics := score(text, politicsKeywords)

	switch {
	case sports > politics:
		return CategorySports
	case politics > sports:
		return CategoryPolitics
	default:
		return CategoryOther
	}
}

// IsMonitored reports whether the market classifies into one of the
// operator-configured categories.
func IsMonitored(title, slug string, monitored []string) bool {
	got := string(Classify(title, slug))
	for _, want := range monitored {
		if strings.EqualFold(strings.TrimSpace(want), got) {
			return true
		}
	}
	return false
}

func score(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
