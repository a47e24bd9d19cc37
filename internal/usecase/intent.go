package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/skinsage/backend/internal/domain"
)

// budgetPatterns capture an "under <currency-amount>" ceiling. Two
// currency symbols are supported; the first pattern that matches wins.
var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`under\s*₹?\s*(\d{2,5})`),
	regexp.MustCompile(`under\s*\$?\s*(\d{1,4})`),
}

// concernOrder fixes the evaluation order of concern classes. Matched
// concerns are kept in this order, not in match order.
var concernOrder = []domain.Concern{
	domain.ConcernAcne,
	domain.ConcernPigmentation,
	domain.ConcernRedness,
	domain.ConcernDehydration,
	domain.ConcernOil,
}

// concernPatterns is the declarative keyword table behind concern
// classification. "oily skin" alone is a skin type, carried by the
// profile, so the oil class only fires on explicit oil-control language.
var concernPatterns = map[domain.Concern]*regexp.Regexp{
	domain.ConcernAcne:         regexp.MustCompile(`(acne|pimple|whitehead|blackhead|breakout)`),
	domain.ConcernPigmentation: regexp.MustCompile(`(tan|suntan|dark spot|hyperpig|melasma|dull)`),
	domain.ConcernRedness:      regexp.MustCompile(`(redness|rosacea|flush|irritat)`),
	domain.ConcernDehydration:  regexp.MustCompile(`(dry|dehydrated|tight|flaky)`),
	domain.ConcernOil:          regexp.MustCompile(`(oil[- ]control|sebum|shine|greasy)`),
}

// tanPattern promotes tan/suntan mentions to pigmentation when no concern
// class fired; tan vocabulary overlaps only weakly with the general
// discoloration terms.
var tanPattern = regexp.MustCompile(`(tan|suntan)`)

var categoryOrder = []domain.Category{
	domain.CategorySunscreen,
	domain.CategoryCleanser,
	domain.CategorySerum,
	domain.CategoryMoisturizer,
	domain.CategoryExfoliant,
}

var categoryPatterns = map[domain.Category]*regexp.Regexp{
	domain.CategorySunscreen:   regexp.MustCompile(`(spf|sunscreen|sunblock)`),
	domain.CategoryCleanser:    regexp.MustCompile(`(cleanser|face wash)`),
	domain.CategorySerum:       regexp.MustCompile(`(serum|treatment|essence)`),
	domain.CategoryMoisturizer: regexp.MustCompile(`(moisturizer|moisturiser|cream|lotion)`),
	domain.CategoryExfoliant:   regexp.MustCompile(`(exfoliat|aha|bha|peel|mandelic|glycolic|lactic)`),
}

// ParseIntent turns a free-text query into a structured Intent. It is a
// pure function: no side effects, no failure mode beyond defaults.
// Concerns is never empty; it defaults to acne so downstream scoring
// always has at least one signal.
func ParseIntent(query string) domain.Intent {
	q := strings.ToLower(query)

	intent := domain.Intent{
		BudgetMax:  parseBudget(q),
		Categories: []domain.Category{},
	}

	for _, concern := range concernOrder {
		if concernPatterns[concern].MatchString(q) {
			intent.Concerns = append(intent.Concerns, concern)
		}
	}
	if len(intent.Concerns) == 0 && tanPattern.MatchString(q) {
		intent.Concerns = append(intent.Concerns, domain.ConcernPigmentation)
	}
	if len(intent.Concerns) == 0 {
		intent.Concerns = []domain.Concern{domain.ConcernAcne}
	}

	for _, category := range categoryOrder {
		if categoryPatterns[category].MatchString(q) {
			intent.Categories = append(intent.Categories, category)
		}
	}

	// A pigmentation routine is incomplete without photoprotection and
	// exfoliation, so fill in the default categories
	if len(intent.Categories) == 0 && intent.HasConcern(domain.ConcernPigmentation) {
		intent.Categories = []domain.Category{
			domain.CategorySunscreen,
			domain.CategorySerum,
			domain.CategoryExfoliant,
		}
	}

	return intent
}

// parseBudget extracts the budget ceiling, if any. Absent means no
// ceiling, not zero.
func parseBudget(q string) *float64 {
	for _, pattern := range budgetPatterns {
		if m := pattern.FindStringSubmatch(q); m != nil {
			value, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			return &value
		}
	}
	return nil
}
