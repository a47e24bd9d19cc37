package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/skinsage/backend/internal/domain"
)

// organicResultLimit caps how many organic links one response contributes;
// everything past the first page fold is listicle noise
const organicResultLimit = 8

// Candidate source tags, one per extraction shape
const (
	SourceShopping       = "shopping"
	SourceInlineShopping = "inline_shopping"
	SourceOrganic        = "organic"
)

// displayPricePattern pulls a currency amount out of a display string or
// free text, e.g. "₹499", "$ 12.99", "under ₹1,299"
var displayPricePattern = regexp.MustCompile(`([₹$])\s*([\d,]+(?:\.\d+)?)`)

// shapeExtractor maps one raw result shape onto the uniform Candidate
// schema. The provider mixes up to three shapes in a single response;
// keeping the extractors behind one contract means a fourth shape is a
// new type here, not an edit to the scorer.
type shapeExtractor interface {
	extract(resp *domain.SearchResponse) []domain.Candidate
}

// Normalizer flattens a raw provider response into candidates. Records
// without a URL are dropped; they can never be deduped, classified, or
// linked to, so they are malformed by definition.
type Normalizer struct {
	extractors []shapeExtractor
}

// NewNormalizer creates a normalizer covering all known result shapes
func NewNormalizer() *Normalizer {
	return &Normalizer{
		extractors: []shapeExtractor{
			shoppingExtractor{},
			inlineShoppingExtractor{},
			organicExtractor{limit: organicResultLimit},
		},
	}
}

// Normalize extracts candidates from every shape present in the response
func (n *Normalizer) Normalize(resp *domain.SearchResponse) []domain.Candidate {
	if resp == nil {
		return nil
	}

	var candidates []domain.Candidate
	for _, extractor := range n.extractors {
		for _, c := range extractor.extract(resp) {
			if c.URL == "" {
				continue
			}
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// shoppingExtractor handles primary commerce listings
type shoppingExtractor struct{}

func (shoppingExtractor) extract(resp *domain.SearchResponse) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(resp.ShoppingResults))
	for i, r := range resp.ShoppingResults {
		id := r.ProductID
		if id == "" {
			id = fmt.Sprintf("shop_%d", i)
		}

		candidates = append(candidates, domain.Candidate{
			ID:      id,
			Name:    r.Title,
			Brand:   r.Source,
			URL:     r.Link,
			Price:   shoppingPrice(r),
			Rating:  optionalRating(r.Rating),
			Snippet: r.Snippet,
			Source:  SourceShopping,
		})
	}
	return candidates
}

// shoppingPrice prefers the provider's extracted numeric price and falls
// back to parsing the display string
func shoppingPrice(r domain.ShoppingResult) *domain.Price {
	if r.ExtractedPrice > 0 {
		return &domain.Price{Value: r.ExtractedPrice, Currency: currencyOf(r.Price)}
	}
	return parseDisplayPrice(r.Price)
}

// inlineShoppingExtractor handles commerce cards embedded in web results;
// their price arrives only as a display string and they have no snippet
type inlineShoppingExtractor struct{}

func (inlineShoppingExtractor) extract(resp *domain.SearchResponse) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(resp.InlineShoppingResults))
	for i, r := range resp.InlineShoppingResults {
		id := fmt.Sprintf("inline_%d", i)
		if r.BlockPosition > 0 {
			id = fmt.Sprintf("inline_%d", r.BlockPosition)
		}

		candidates = append(candidates, domain.Candidate{
			ID:     id,
			Name:   r.Title,
			Brand:  r.Source,
			URL:    r.Link,
			Price:  parseDisplayPrice(r.Price),
			Rating: optionalRating(r.Rating),
			Source: SourceInlineShopping,
		})
	}
	return candidates
}

// organicExtractor handles plain web links. Organic records never carry a
// price or rating; those stay nil rather than being fabricated.
type organicExtractor struct {
	limit int
}

func (e organicExtractor) extract(resp *domain.SearchResponse) []domain.Candidate {
	results := resp.OrganicResults
	if e.limit > 0 && len(results) > e.limit {
		results = results[:e.limit]
	}

	candidates := make([]domain.Candidate, 0, len(results))
	for i, r := range results {
		id := fmt.Sprintf("org_%d", i)
		if r.Position > 0 {
			id = fmt.Sprintf("org_%d", r.Position)
		}

		brand := r.DisplayedLink
		if idx := strings.Index(brand, "/"); idx >= 0 {
			brand = brand[:idx]
		}

		candidates = append(candidates, domain.Candidate{
			ID:      id,
			Name:    r.Title,
			Brand:   brand,
			URL:     r.Link,
			Snippet: r.Snippet,
			Source:  SourceOrganic,
		})
	}
	return candidates
}

// parseDisplayPrice extracts a Price from a display string or free text.
// Returns nil when no currency amount is present; nil means unknown, not
// free.
func parseDisplayPrice(text string) *domain.Price {
	m := displayPricePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
	if err != nil || value <= 0 {
		return nil
	}

	currency := "USD"
	if m[1] == "₹" {
		currency = "INR"
	}
	return &domain.Price{Value: value, Currency: currency}
}

// currencyOf infers the currency from a display string, defaulting to USD
func currencyOf(display string) string {
	if strings.Contains(display, "₹") {
		return "INR"
	}
	return "USD"
}

// optionalRating converts the provider's zero-default rating into an
// optional value
func optionalRating(rating float64) *float64 {
	if rating <= 0 {
		return nil
	}
	return &rating
}
