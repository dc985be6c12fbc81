// Package categorization assigns spending categories to merchant names by
// keyword matching. All keywords across the taxonomy are compiled into a
// single Aho-Corasick matcher so one pass over the input finds every hit
// regardless of how many keywords are registered.
package categorization

import (
	"math"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// CategoryInfo is the categorization verdict for a single merchant string.
// Confidence is 0-100; MatchedKeywords lists only the keywords that actually
// hit, never the category's full list.
type CategoryInfo struct {
	Category        string   `json:"category"`
	Confidence      int      `json:"confidence"`
	Emoji           string   `json:"emoji"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

// keywordRef ties a matcher pattern back to the category that registered it.
// A pattern can carry several refs because keywords like "subscription" or
// "sports" appear in more than one category.
type keywordRef struct {
	category int
	keyword  string
}

// Categorizer is safe for concurrent use; the matcher is built once in New
// and only read afterwards.
type Categorizer struct {
	matcher  *ahocorasick.Matcher
	patterns []string
	refs     [][]keywordRef
}

// New builds a Categorizer over the full taxonomy.
func New() *Categorizer {
	c := &Categorizer{}
	patternToIndex := make(map[string]int)
	for ci, cat := range categories {
		for _, kw := range cat.Keywords {
			kw = strings.ToLower(kw)
			idx, ok := patternToIndex[kw]
			if !ok {
				idx = len(c.patterns)
				patternToIndex[kw] = idx
				c.patterns = append(c.patterns, kw)
				c.refs = append(c.refs, nil)
			}
			c.refs[idx] = append(c.refs[idx], keywordRef{category: ci, keyword: kw})
		}
	}
	c.matcher = ahocorasick.NewStringMatcher(c.patterns)
	return c
}

// Categorize scores every category against the merchant string and returns
// the winner. Each keyword hit scores one point plus a bonus of two when the
// merchant equals the keyword or starts or ends with it. Confidence is
// score/3 scaled to 0-100 and capped. Ties go to the category declared
// first in the taxonomy.
func (c *Categorizer) Categorize(merchant string) CategoryInfo {
	other := categories[len(categories)-1]
	if strings.TrimSpace(merchant) == "" {
		return CategoryInfo{Category: other.Name, Emoji: other.Emoji, MatchedKeywords: []string{}}
	}

	lower := strings.ToLower(merchant)
	scores := make([]int, len(categories))
	matched := make([][]string, len(categories))

	for _, idx := range c.matcher.Match([]byte(lower)) {
		for _, ref := range c.refs[idx] {
			score := 1
			if lower == ref.keyword ||
				strings.HasPrefix(lower, ref.keyword) ||
				strings.HasSuffix(lower, ref.keyword) {
				score += 2
			}
			scores[ref.category] += score
			matched[ref.category] = append(matched[ref.category], ref.keyword)
		}
	}

	best := -1
	for i, s := range scores {
		if s > 0 && (best < 0 || s > scores[best]) {
			best = i
		}
	}
	if best < 0 {
		return CategoryInfo{Category: other.Name, Emoji: other.Emoji, MatchedKeywords: []string{}}
	}

	confidence := int(math.Round(float64(scores[best]) / 3 * 100))
	if confidence > 100 {
		confidence = 100
	}
	return CategoryInfo{
		Category:        categories[best].Name,
		Confidence:      confidence,
		Emoji:           categories[best].Emoji,
		MatchedKeywords: matched[best],
	}
}
