package engine

// SearxngResult is one web search hit, from SearXNG or a direct scraper.
type SearxngResult struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	URL     string  `json:"url"`
	Score   float64 `json:"score"`
}

type searxngResponse struct {
	Results []SearxngResult `json:"results"`
}

// SearchOptions narrows a SearXNG query.
type SearchOptions struct {
	Language  string
	TimeRange string // day, month, year
	Engines   string // comma-separated engine names
}
