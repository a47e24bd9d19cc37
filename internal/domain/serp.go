package domain

// SearchMode selects which provider engine a query is issued against
type SearchMode string

const (
	// ModeCommerce targets the shopping engine (product cards with prices)
	ModeCommerce SearchMode = "commerce"
	// ModeWeb targets the general web engine (organic links, inline cards)
	ModeWeb SearchMode = "web"
)

// SearchResponse is the raw provider payload. A single response may carry
// up to three independent result shapes, each with its own field layout.
type SearchResponse struct {
	// Error is the provider's soft-error field: a 200 response with this
	// set (quota exhausted, parse issue) is treated as zero results.
	Error                 string                `json:"error,omitempty"`
	ShoppingResults       []ShoppingResult      `json:"shopping_results,omitempty"`
	InlineShoppingResults []InlineShoppingBlock `json:"inline_shopping_results,omitempty"`
	OrganicResults        []OrganicResult       `json:"organic_results,omitempty"`
}

// ShoppingResult is a primary commerce listing
type ShoppingResult struct {
	ProductID      string  `json:"product_id"`
	Title          string  `json:"title"`
	Source         string  `json:"source"` // merchant name
	Link           string  `json:"link"`
	Price          string  `json:"price"` // display string, e.g. "₹499"
	ExtractedPrice float64 `json:"extracted_price"`
	Rating         float64 `json:"rating"`
	Reviews        int     `json:"reviews"`
	Snippet        string  `json:"snippet"`
}

// InlineShoppingBlock is a secondary commerce card embedded in a web
// search page. Its price arrives only as a display string.
type InlineShoppingBlock struct {
	BlockPosition int     `json:"block_position"`
	Title         string  `json:"title"`
	Source        string  `json:"source"`
	Link          string  `json:"link"`
	Price         string  `json:"price"`
	Rating        float64 `json:"rating"`
}

// OrganicResult is a plain web link. It never carries a price or rating.
type OrganicResult struct {
	Position      int    `json:"position"`
	Title         string `json:"title"`
	Link          string `json:"link"`
	DisplayedLink string `json:"displayed_link"`
	Snippet       string `json:"snippet"`
}
