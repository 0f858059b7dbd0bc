package session

import (
	"context"
	"errors"

	"github.com/mikeboe/verifact/pkg/analysis"
	"github.com/mikeboe/verifact/pkg/history"
)

// Status is the lifecycle stage of the session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusAnalyzing Status = "analyzing"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// UnexpectedErrorMessage is shown when a failure carries no message.
const UnexpectedErrorMessage = "发生了意外错误"

var (
	// ErrBlankQuery rejects empty or whitespace-only submissions.
	ErrBlankQuery = errors.New("query is blank")
	// ErrBusy rejects commands while a query is in flight.
	ErrBusy = errors.New("an analysis is already in progress")
	// ErrHistoryNotFound is returned for unknown history IDs.
	ErrHistoryNotFound = errors.New("history item not found")
)

// Analyzer runs one grounded query.
type Analyzer interface {
	Analyze(ctx context.Context, query string) (*analysis.Result, error)
}

// State is a snapshot of the session.
type State struct {
	Query   string           `json:"query"`
	Status  Status           `json:"status"`
	Result  *analysis.Result `json:"result"`
	Error   string           `json:"error,omitempty"`
	History []history.Item   `json:"history"`
}
