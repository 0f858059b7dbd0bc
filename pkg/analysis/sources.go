package analysis

import "google.golang.org/genai"

// BuildSources turns grounding chunks into an ordered list of unique sources.
// Chunks without both a URI and a title are skipped; for repeated URIs the
// first occurrence wins.
func BuildSources(chunks []*genai.GroundingChunk) []Source {
	sources := make([]Source, 0, len(chunks))
	seen := make(map[string]bool)

	for _, chunk := range chunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		web := chunk.Web
		if web.URI == "" || web.Title == "" {
			continue
		}
		if seen[web.URI] {
			continue
		}
		seen[web.URI] = true
		sources = append(sources, Source{URI: web.URI, Title: web.Title})
	}

	return sources
}
