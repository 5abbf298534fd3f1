package search

// Scored pairs a row with its relevance rank in [0, 1].
type Scored[T any] struct {
	Item T       `json:"item"`
	Rank float64 `json:"rank"`
}
