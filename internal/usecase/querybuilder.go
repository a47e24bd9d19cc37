package usecase

import (
	"fmt"
	"strings"

	"github.com/skinsage/backend/internal/domain"
)

// QueryVariant is one search attempt in the cascade, strict to broad
type QueryVariant struct {
	Label string
	Query string
	Mode  domain.SearchMode
}

// Variant labels, in trial order
const (
	VariantStrict    = "strict"
	VariantWebStrict = "web-strict"
	VariantRelaxed   = "relaxed"
	VariantBroad     = "broad"
	VariantSiteSweep = "site-sweep"
)

// retailerDomains lists known regional commerce domains per region.
// Regions without an entry fall back to the US set.
var retailerDomains = map[string][]string{
	"in": {"nykaa.com", "amazon.in", "flipkart.com", "purplle.com", "myntra.com", "tirabeauty.com"},
	"us": {"sephora.com", "ulta.com", "amazon.com", "dermstore.com", "target.com"},
}

// RetailerDomains returns the known commerce domains for a region
func RetailerDomains(region string) []string {
	if domains, ok := retailerDomains[region]; ok {
		return domains
	}
	return retailerDomains["us"]
}

// activeTokens holds the concern-specific active-ingredient query tokens
var activeTokens = map[domain.Concern]string{
	domain.ConcernPigmentation: "vitamin c OR arbutin OR azelaic",
	domain.ConcernAcne:         "salicylic OR benzoyl peroxide",
	domain.ConcernRedness:      "azelaic OR centella OR niacinamide",
}

// sunscreenTextureTokens holds skin-type-specific texture hints used when
// sunscreen is the selected category
var sunscreenTextureTokens = map[domain.SkinType]string{
	domain.SkinOily:      "gel OR matte OR oil-free",
	domain.SkinDry:       "cream OR rich",
	domain.SkinSensitive: "mineral OR soothing",
}

// BuildTokens assembles the query tokens for the intent and profile.
//
// When sunscreen is a selected category the tokens are sun-protection
// specific (SPF, broad-spectrum, texture hints) and acne actives are left
// out: acne actives rarely co-occur in real sunscreen listings, and
// emitting them would make the scorer punish legitimate sunscreens.
func BuildTokens(intent domain.Intent, profile domain.Profile) []string {
	var tokens []string

	sunscreen := intent.HasCategory(domain.CategorySunscreen)

	for _, category := range intent.Categories {
		tokens = append(tokens, string(category))
	}

	if sunscreen {
		tokens = append(tokens, "spf", `"broad spectrum"`)
		if hint, ok := sunscreenTextureTokens[profile.SkinType]; ok {
			tokens = append(tokens, hint)
		}
	}

	for _, concern := range intent.Concerns {
		// Acne actives are conceptually separate from sun protection
		if sunscreen && concern == domain.ConcernAcne {
			continue
		}
		if concern == domain.ConcernPigmentation {
			tokens = append(tokens, "brightening")
		}
		if active, ok := activeTokens[concern]; ok {
			tokens = append(tokens, active)
		}
	}

	if profile.HasSensitivity("fragrance") {
		tokens = append(tokens, `"fragrance-free"`)
	}

	return tokens
}

// BuildPlan produces the ordered query variants for the cascade, strict
// first. The per-site sweep is built separately (BuildSiteSweep) because
// the controller only reaches for it when every prior pass is thin.
func BuildPlan(intent domain.Intent, profile domain.Profile, rawQuery, region string) []QueryVariant {
	tokens := strings.Join(BuildTokens(intent, profile), " ")
	domains := RetailerDomains(region)

	var siteParts []string
	for _, d := range domains {
		siteParts = append(siteParts, "site:"+d)
	}
	siteClause := strings.Join(siteParts, " OR ")

	strict := strings.TrimSpace(fmt.Sprintf("%s %s %s", tokens, rawQuery, siteClause))
	relaxed := strings.TrimSpace(fmt.Sprintf("%s %s", tokens, rawQuery))
	broad := strings.TrimSpace(fmt.Sprintf("%s %s", tokens, broadPhrase(intent, profile)))

	return []QueryVariant{
		{Label: VariantStrict, Query: strict, Mode: domain.ModeCommerce},
		{Label: VariantWebStrict, Query: strict, Mode: domain.ModeWeb},
		{Label: VariantRelaxed, Query: relaxed, Mode: domain.ModeCommerce},
		{Label: VariantBroad, Query: broad, Mode: domain.ModeWeb},
	}
}

// BuildSiteSweep produces one query per known retailer domain, each with a
// single site restriction
func BuildSiteSweep(intent domain.Intent, profile domain.Profile, rawQuery, region string) []QueryVariant {
	tokens := strings.Join(BuildTokens(intent, profile), " ")

	var sweep []QueryVariant
	for _, d := range RetailerDomains(region) {
		query := strings.TrimSpace(fmt.Sprintf("%s %s site:%s", tokens, rawQuery, d))
		sweep = append(sweep, QueryVariant{
			Label: VariantSiteSweep,
			Query: query,
			Mode:  domain.ModeWeb,
		})
	}
	return sweep
}

// broadPhrase builds the generic "best <category> for <skin type>" query
// used by the broad variant, which drops the raw query entirely
func broadPhrase(intent domain.Intent, profile domain.Profile) string {
	category := "skincare products"
	if len(intent.Categories) > 0 {
		category = string(intent.Categories[0])
	}

	switch profile.SkinType {
	case "", domain.SkinUnknown:
		return fmt.Sprintf("best %s", category)
	default:
		return fmt.Sprintf("best %s for %s skin", category, profile.SkinType)
	}
}
