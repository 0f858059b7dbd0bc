package analysis

import (
	"net/url"
	"strings"
	"time"

	"google.golang.org/genai"
)

// NoAnswerText is used when the model returns no text.
const NoAnswerText = "未生成回答。"

// Source is one deduplicated web citation.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Hostname returns the host part of the source URI without a leading "www.".
// It falls back to the raw URI when it cannot be parsed.
func (s Source) Hostname() string {
	u, err := url.Parse(s.URI)
	if err != nil || u.Hostname() == "" {
		return s.URI
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// Result is the normalized outcome of one grounded query.
type Result struct {
	Text              string                   `json:"text"`
	Sources           []Source                 `json:"sources"`
	GroundingMetadata *genai.GroundingMetadata `json:"groundingMetadata"`
	Timestamp         time.Time                `json:"timestamp"`
}

// SearchQueries returns the web search queries the model issued while
// grounding the answer, if the provider reported any.
func (r *Result) SearchQueries() []string {
	if r == nil || r.GroundingMetadata == nil {
		return nil
	}
	return r.GroundingMetadata.WebSearchQueries
}
