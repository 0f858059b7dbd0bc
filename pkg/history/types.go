package history

import "github.com/mikeboe/verifact/pkg/analysis"

// DefaultCapacity is the number of results kept when no capacity is configured.
const DefaultCapacity = 10

// Item is a completed query together with its result.
type Item struct {
	analysis.Result
	ID    string `json:"id"`
	Query string `json:"query"`
}
