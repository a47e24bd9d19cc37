package usecase

import (
	"net/url"
	"strings"

	"github.com/skinsage/backend/internal/domain"
)

// productPathMarkers maps retailer hosts to the URL path segments their
// product detail pages carry. URLs on these hosts that lack the marker
// are category/search/article pages, not purchasable products. Hosts not
// listed here pass through: the table can say nothing about them.
var productPathMarkers = map[string][]string{
	"nykaa.com":      {"/p/"},
	"amazon.in":      {"/dp/", "/gp/product/"},
	"amazon.com":     {"/dp/", "/gp/product/"},
	"flipkart.com":   {"/p/"},
	"purplle.com":    {"/product/"},
	"myntra.com":     {"/buy"},
	"tirabeauty.com": {"/product/"},
	"sephora.com":    {"/product/"},
	"ulta.com":       {"/p/"},
	"dermstore.com":  {"/product/"},
	"target.com":     {"/p/"},
}

// PrepareCandidates turns the cascade's raw accumulation into the scored
// pool: dedup by fragment-stripped URL (first occurrence wins), keep only
// product-detail-looking URLs, backfill price from text, derive the
// store, then apply the budget ceiling.
func PrepareCandidates(candidates []domain.Candidate, intent domain.Intent) []domain.Candidate {
	unique := dedupeByURL(candidates)

	var pool []domain.Candidate
	for _, c := range unique {
		if !looksLikeProductURL(c.URL) {
			continue
		}
		pool = append(pool, enrich(c))
	}

	return filterByBudget(pool, intent.BudgetMax)
}

// dedupeByURL collapses candidates sharing a canonical URL. The dedup key
// is the URL with any #fragment stripped; the first occurrence wins.
func dedupeByURL(candidates []domain.Candidate) []domain.Candidate {
	seen := make(map[string]bool, len(candidates))
	var unique []domain.Candidate

	for _, c := range candidates {
		key := stripFragment(c.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		c.URL = key
		unique = append(unique, c)
	}
	return unique
}

// stripFragment removes the #fragment from a URL
func stripFragment(raw string) string {
	if idx := strings.Index(raw, "#"); idx >= 0 {
		return raw[:idx]
	}
	return raw
}

// looksLikeProductURL reports whether the URL points at a purchasable
// product detail page, for retailers whose URL structure is known
func looksLikeProductURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	host := hostOf(u)
	markers, known := productPathMarkers[host]
	if !known {
		return true
	}

	for _, marker := range markers {
		if strings.Contains(u.Path, marker) {
			return true
		}
	}
	return false
}

// enrich backfills the price from the candidate's text when the provider
// did not supply one, and derives the store from the URL host. A price
// still absent after inference stays nil, which the scorer treats as
// unknown, not free.
func enrich(c domain.Candidate) domain.Candidate {
	if c.Price == nil {
		c.Price = parseDisplayPrice(c.Name + " " + c.Snippet)
	}

	if u, err := url.Parse(c.URL); err == nil {
		c.Store = hostOf(u)
	}
	return c
}

// hostOf returns the hostname with a leading "www." stripped
func hostOf(u *url.URL) string {
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// filterByBudget drops candidates with a known price over the ceiling.
// If that would leave the pool empty the unfiltered list is returned
// instead: never return nothing just because everything is over budget;
// the scorer's over-budget penalty ranks them down instead.
func filterByBudget(candidates []domain.Candidate, budgetMax *float64) []domain.Candidate {
	if budgetMax == nil || len(candidates) == 0 {
		return candidates
	}

	var within []domain.Candidate
	for _, c := range candidates {
		if c.Price != nil && c.Price.Value > *budgetMax {
			continue
		}
		within = append(within, c)
	}

	if len(within) == 0 {
		return candidates
	}
	return within
}
