package render

import (
	"strings"
	"testing"
	"time"

	"google.golang.org/genai"

	"github.com/mikeboe/verifact/pkg/analysis"
	"github.com/mikeboe/verifact/pkg/history"
	"github.com/mikeboe/verifact/pkg/session"
)

func TestResultMarkdown(t *testing.T) {
	res := &analysis.Result{
		Text: "Webb found water vapour.",
		Sources: []analysis.Source{
			{URI: "https://www.nasa.gov/webb", Title: "NASA Webb"},
			{URI: "https://esa.int/news", Title: "ESA"},
		},
		GroundingMetadata: &genai.GroundingMetadata{WebSearchQueries: []string{"webb discoveries"}},
	}

	md := ResultMarkdown("webb?", res)

	for _, want := range []string{
		"> webb?",
		"Webb found water vapour.",
		"60/100 (中等)",
		"1. [NASA Webb](https://www.nasa.gov/webb) — nasa.gov",
		"2. [ESA](https://esa.int/news) — esa.int",
		"- webb discoveries",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestResultMarkdownNoSources(t *testing.T) {
	md := ResultMarkdown("q", &analysis.Result{Text: analysis.NoAnswerText, Sources: []analysis.Source{}})
	if strings.Contains(md, "## Sources") {
		t.Errorf("unexpected sources section:\n%s", md)
	}
	if !strings.Contains(md, "10/100 (极低)") {
		t.Errorf("missing credibility line:\n%s", md)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	if got := HistoryMarkdown(nil); !strings.Contains(got, "No history") {
		t.Errorf("HistoryMarkdown(nil) = %q", got)
	}

	items := []history.Item{
		{Query: "newest", Result: analysis.Result{Timestamp: time.Date(2024, 8, 2, 9, 30, 0, 0, time.UTC)}},
		{Query: "older", Result: analysis.Result{Timestamp: time.Date(2024, 8, 1, 9, 30, 0, 0, time.UTC)}},
	}
	got := HistoryMarkdown(items)
	if !strings.Contains(got, "1. newest — 2024-08-02 09:30") || !strings.Contains(got, "2. older") {
		t.Errorf("HistoryMarkdown() = %q", got)
	}
}

func TestStateMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		state session.State
		want  string
	}{
		{"idle", session.State{Status: session.StatusIdle}, "Ask a question"},
		{"error", session.State{Status: session.StatusError, Query: "q", Error: "boom"}, "**Error:** boom"},
		{"analyzing", session.State{Status: session.StatusAnalyzing, Query: "q"}, "Analyzing"},
		{"completed", session.State{Status: session.StatusCompleted, Query: "q", Result: &analysis.Result{Text: "done"}}, "done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateMarkdown(tt.state); !strings.Contains(got, tt.want) {
				t.Errorf("StateMarkdown() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestPlainRenderer(t *testing.T) {
	r, err := NewRenderer(80, PlainStyle)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	out := r.Render("Some **bold** answer for hello")
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain output contains escape sequences: %q", out)
	}
	if !strings.Contains(out, "answer for hello") {
		t.Errorf("output = %q", out)
	}
}
