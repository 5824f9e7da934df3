package omdb

// Payload is the top-level OMDb response shape. Single-title lookups fill the
// metadata fields; search-mode lookups fill Search. Response is the API's
// own "True"/"False" found flag, with Error carrying the reason on "False".
type Payload struct {
	Response  string       `json:"Response"`
	Error     string       `json:"Error,omitempty"`
	Title     string       `json:"Title,omitempty"`
	Year      string       `json:"Year,omitempty"`
	Director  string       `json:"Director,omitempty"`
	Plot      string       `json:"Plot,omitempty"`
	BoxOffice string       `json:"BoxOffice,omitempty"`
	Search    []SearchItem `json:"Search,omitempty"`
}

// SearchItem is one candidate from a fuzzy search response.
type SearchItem struct {
	Title string `json:"Title"`
	Year  string `json:"Year"`
}

// Found reports whether the API answered with a match.
func (p *Payload) Found() bool {
	return p != nil && p.Response == "True"
}
