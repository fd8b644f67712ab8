package types

// AskRequest is the body of POST /api/v1/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the generated answer.
type AskResponse struct {
	Answer string `json:"answer"`
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k,omitempty"`
}

// SearchResultItem is one retrieved chunk in a search response.
type SearchResultItem struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata,omitempty"`
	Score    float64  `json:"score"`
}

// SearchResponse lists retrieved chunks in ascending score order.
type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}

// DataResponse is the generic envelope used by the HTTP handlers.
type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
