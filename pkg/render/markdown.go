// Package render formats session results for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/mikeboe/verifact/pkg/analysis"
	"github.com/mikeboe/verifact/pkg/credibility"
	"github.com/mikeboe/verifact/pkg/history"
	"github.com/mikeboe/verifact/pkg/session"
)

// ResultMarkdown builds the markdown shown for a result: the answer, the
// credibility line, the cited sources and the search queries that were issued.
func ResultMarkdown(query string, res *analysis.Result) string {
	var sb strings.Builder

	if query != "" {
		sb.WriteString(fmt.Sprintf("> %s\n\n", query))
	}
	if res == nil {
		return sb.String()
	}

	sb.WriteString(res.Text)
	sb.WriteString("\n\n")

	m := credibility.ForResult(res)
	sb.WriteString(fmt.Sprintf("**Credibility:** %d/100 (%s) · %d sources\n\n", m.Score, m.Label, len(res.Sources)))

	if len(res.Sources) > 0 {
		sb.WriteString("## Sources\n\n")
		for i, s := range res.Sources {
			sb.WriteString(fmt.Sprintf("%d. [%s](%s) — %s\n", i+1, s.Title, s.URI, s.Hostname()))
		}
		sb.WriteString("\n")
	}

	if queries := res.SearchQueries(); len(queries) > 0 {
		sb.WriteString("## Searches\n\n")
		for _, q := range queries {
			sb.WriteString(fmt.Sprintf("- %s\n", q))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// HistoryMarkdown lists history items, newest first, numbered from 1.
func HistoryMarkdown(items []history.Item) string {
	if len(items) == 0 {
		return "_No history yet._\n"
	}

	var sb strings.Builder
	sb.WriteString("## Recent queries\n\n")
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s — %s, %d sources\n",
			i+1, item.Query, item.Timestamp.Format("2006-01-02 15:04"), len(item.Sources)))
	}
	return sb.String()
}

// StateMarkdown renders whatever the session currently shows.
func StateMarkdown(st session.State) string {
	switch st.Status {
	case session.StatusError:
		return fmt.Sprintf("> %s\n\n**Error:** %s\n", st.Query, st.Error)
	case session.StatusAnalyzing:
		return fmt.Sprintf("> %s\n\n_Analyzing..._\n", st.Query)
	case session.StatusCompleted:
		return ResultMarkdown(st.Query, st.Result)
	default:
		return "_Ask a question to get a grounded answer._\n"
	}
}

// Renderer turns markdown into styled terminal output.
type Renderer struct {
	term *glamour.TermRenderer
}

// PlainStyle renders without ANSI escapes, for pipes and tests.
const PlainStyle = "notty"

// NewRenderer creates a renderer wrapping at width columns. An empty style or
// "auto" picks dark or light from the terminal; anything else names a glamour
// standard style such as "dark", "light" or PlainStyle.
func NewRenderer(width int, style string) (*Renderer, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	term, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{term: term}, nil
}

// Render styles md, falling back to the raw markdown if styling fails.
func (r *Renderer) Render(md string) string {
	out, err := r.term.Render(md)
	if err != nil {
		return md
	}
	return out
}
