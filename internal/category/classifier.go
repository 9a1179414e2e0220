// Package category assigns a topic to an article by keyword matching.
package category

import (
	"strings"

	"CommentsAnalyzer/internal/domain"
)

// Rule is one row of the keyword table. Rules are evaluated in slice order.
type Rule struct {
	Category domain.Category
	Keywords []string
}

// DefaultRules is the built-in table; declaration order is priority order.
func DefaultRules() []Rule {
	return []Rule{
		{Category: domain.CategoryPolitics, Keywords: []string{"politic", "government", "election", "congress", "senate", "parliament", "political party", "corruption", "minister", "president"}},
		{Category: domain.CategorySports, Keywords: []string{"sport", "football", "soccer", "basketball", "athletics", "championship", "league", "tournament", "olympic"}},
		{Category: domain.CategoryTragedies, Keywords: []string{"tragedy", "tragic", "accident", "death toll", "died", "disaster", "injured", "victims", "killed"}},
		{Category: domain.CategoryEntertainment, Keywords: []string{"entertainment", "cinema", "movie", "film", "concert", "festival", "celebrit", "tv series"}},
	}
}

// Classifier maps title+lead text to exactly one category.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier over rules; empty rules select DefaultRules.
// Keywords are case-folded once here.
func NewClassifier(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	folded := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		keywords := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		folded = append(folded, Rule{Category: rule.Category, Keywords: keywords})
	}

	return &Classifier{rules: folded}
}

// Classify returns the first rule whose keywords appear as a substring of the
// combined lower-cased title and lead, or CategoryOther when none match.
// Ties resolve by rule order, not by number of hits.
func (c *Classifier) Classify(title, lead string) domain.Category {
	text := strings.ToLower(title) + " " + strings.ToLower(lead)

	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}

	return domain.CategoryOther
}

// Rules returns a copy of the active table.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}
