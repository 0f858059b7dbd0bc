package server

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mikeboe/verifact/pkg/credibility"
	"github.com/mikeboe/verifact/pkg/session"
)

type AnalyzeArgs struct {
	Query string `json:"query" jsonschema:"the question to answer with Google Search grounding"`
}

type SourceView struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
	Host  string `json:"host"`
}

type AnalyzeOutput struct {
	Status        string              `json:"status"`
	Query         string              `json:"query"`
	Answer        string              `json:"answer,omitempty"`
	Error         string              `json:"error,omitempty"`
	Sources       []SourceView        `json:"sources"`
	SearchQueries []string            `json:"searchQueries,omitempty"`
	Credibility   credibility.Metrics `json:"credibility"`
}

type ListHistoryArgs struct{}

type HistoryEntry struct {
	ID        string `json:"id"`
	Query     string `json:"query"`
	Timestamp string `json:"timestamp"`
	Sources   int    `json:"sources"`
}

type ListHistoryOutput struct {
	Items []HistoryEntry `json:"items"`
}

type LoadHistoryArgs struct {
	ID string `json:"id" jsonschema:"the id of a history entry returned by list_history"`
}

// NewMCPServer exposes the session as Model Context Protocol tools.
func NewMCPServer(s *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "verifact-mcp", Version: "1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_query",
		Description: "Answer a question using Gemini with Google Search grounding and return the cited sources with a credibility score.",
	}, s.analyzeTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_history",
		Description: "List the most recent answered questions, newest first.",
	}, s.listHistoryTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_history_item",
		Description: "Show a previously answered question again without querying the model.",
	}, s.loadHistoryTool)

	return server
}

// NewMCPHandler serves server over the streamable HTTP transport.
func NewMCPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

func (s *Service) analyzeTool(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeArgs) (*mcp.CallToolResult, AnalyzeOutput, error) {
	st, err := s.Analyze(ctx, args.Query)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}
	return nil, analyzeOutput(st), nil
}

func (s *Service) listHistoryTool(ctx context.Context, req *mcp.CallToolRequest, args ListHistoryArgs) (*mcp.CallToolResult, ListHistoryOutput, error) {
	items := s.History()
	out := ListHistoryOutput{Items: make([]HistoryEntry, 0, len(items))}
	for _, item := range items {
		out.Items = append(out.Items, HistoryEntry{
			ID:        item.ID,
			Query:     item.Query,
			Timestamp: item.Timestamp.Format(time.RFC3339),
			Sources:   len(item.Sources),
		})
	}
	return nil, out, nil
}

func (s *Service) loadHistoryTool(ctx context.Context, req *mcp.CallToolRequest, args LoadHistoryArgs) (*mcp.CallToolResult, AnalyzeOutput, error) {
	st, err := s.LoadHistory(args.ID)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}
	return nil, analyzeOutput(st), nil
}

func analyzeOutput(st session.State) AnalyzeOutput {
	out := AnalyzeOutput{
		Status:      string(st.Status),
		Query:       st.Query,
		Error:       st.Error,
		Sources:     []SourceView{},
		Credibility: credibility.ForResult(st.Result),
	}
	if st.Result != nil {
		out.Answer = st.Result.Text
		out.SearchQueries = st.Result.SearchQueries()
		for _, src := range st.Result.Sources {
			out.Sources = append(out.Sources, SourceView{URI: src.URI, Title: src.Title, Host: src.Hostname()})
		}
	}
	return out
}
