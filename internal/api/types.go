package api

// CatalogEntry is a lightweight catalog row from /meta/products.
// The full list is fetched once per session and drives autocomplete.
type CatalogEntry struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
}

// Product is a product record as the service defines it. Read-only on
// this side; reviews and sentiment fields are only populated by the
// /product/{id} endpoint.
type Product struct {
	ProductID       string   `json:"product_id"`
	ProductName     string   `json:"product_name"`
	Category        string   `json:"category"`
	Rating          float64  `json:"rating"`
	DiscountedPrice float64  `json:"discounted_price"`
	ImgLink         string   `json:"img_link"`
	ProductLink     string   `json:"product_link"`
	PercentPositive float64  `json:"percent_positive"`
	PercentNegative float64  `json:"percent_negative"`
	ReviewsSample   []string `json:"reviews_sample,omitempty"`
}

// PercentNeutral derives the neutral share from the two reported ones.
func (p Product) PercentNeutral() float64 {
	n := 100 - p.PercentPositive - p.PercentNegative
	if n < 0 {
		return 0
	}
	return n
}

// Recommendation is the response of /recommend/by_name and
// /recommend/by_id: a seed product and its ranked neighbors. Replaced
// wholesale per fetch, never merged.
type Recommendation struct {
	SeedProductID   string    `json:"seed_product_id"`
	SeedProductName string    `json:"seed_product_name"`
	MatchScore      float64   `json:"match_score"`
	Recommendations []Product `json:"recommendations"`
}

// PriceQuote is the response of /product/live_price/{id}. Status is
// "live" when the scrape succeeded, "cached" when the service fell back
// to its stored price.
type PriceQuote struct {
	Price  float64 `json:"price"`
	Status string  `json:"status"`
}

// Price status values reported by the service.
const (
	PriceStatusLive   = "live"
	PriceStatusCached = "cached"
)
