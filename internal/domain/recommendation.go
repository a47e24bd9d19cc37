package domain

// Concern is a skin concern tag drawn from a fixed vocabulary
type Concern string

const (
	ConcernAcne         Concern = "acne"
	ConcernPigmentation Concern = "pigmentation"
	ConcernRedness      Concern = "redness"
	ConcernDehydration  Concern = "dehydration"
	ConcernOil          Concern = "oil"
)

// Category is a product category tag drawn from a fixed vocabulary
type Category string

const (
	CategorySunscreen   Category = "sunscreen"
	CategoryCleanser    Category = "cleanser"
	CategorySerum       Category = "serum"
	CategoryMoisturizer Category = "moisturizer"
	CategoryExfoliant   Category = "exfoliant"
)

// Intent is the structured interpretation of a free-text query.
// Concerns is never empty: the parser defaults it to acne so the scorer
// always has at least one signal to evaluate.
type Intent struct {
	BudgetMax  *float64   `json:"budgetMax"`
	Concerns   []Concern  `json:"concerns"`
	Categories []Category `json:"categories"`
}

// HasConcern reports whether the intent includes the given concern
func (i Intent) HasConcern(c Concern) bool {
	for _, v := range i.Concerns {
		if v == c {
			return true
		}
	}
	return false
}

// HasCategory reports whether the intent includes the given category
func (i Intent) HasCategory(c Category) bool {
	for _, v := range i.Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Price is an optional amount in local currency
type Price struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// Candidate is one normalized external search result. It is created by the
// normalizer, enriched (price inference, store) by the deduplicator, and
// then frozen. URL is required; the dedup key is the URL with any fragment
// stripped.
type Candidate struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Brand   string   `json:"brand,omitempty"`
	URL     string   `json:"url"`
	Price   *Price   `json:"price"`
	Rating  *float64 `json:"rating,omitempty"`
	Snippet string   `json:"snippet,omitempty"`
	Source  string   `json:"source"` // extraction path: "shopping", "inline_shopping", "organic"
	Store   string   `json:"store,omitempty"`
}

// RankedResult is a scored, explained candidate. Terminal output.
type RankedResult struct {
	Candidate
	Score int    `json:"score"`
	Why   string `json:"why"`
}

// RecommendRequest is the inbound request consumed by the engine
type RecommendRequest struct {
	Profile Profile `json:"profile"`
	Query   string  `json:"query" binding:"required"`
}

// Recommendation is the terminal response envelope. An empty Results slice
// is a valid, non-error response.
type Recommendation struct {
	QueryUsed string         `json:"queryUsed"`
	Intent    Intent         `json:"intent"`
	Results   []RankedResult `json:"results"`
}
