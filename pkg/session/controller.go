package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mikeboe/verifact/pkg/credibility"
	"github.com/mikeboe/verifact/pkg/history"
)

// Controller owns the session state and history and drives the query
// lifecycle idle -> analyzing -> completed|error.
type Controller struct {
	analyzer Analyzer

	mu    sync.Mutex
	state state

	Logger        *slog.Logger
	OnStateUpdate func(state State)
}

// NewController creates an idle controller keeping historySize results.
func NewController(analyzer Analyzer, historySize int) *Controller {
	return &Controller{
		analyzer: analyzer,
		state: state{
			status:  StatusIdle,
			history: history.New(historySize),
		},
		Logger: slog.Default(),
	}
}

// dispatch applies ev under the lock and reports the new snapshot.
func (c *Controller) dispatch(ev event) (State, error) {
	c.mu.Lock()
	err := reduce(&c.state, ev)
	snap := c.state.snapshot()
	c.mu.Unlock()

	if err == nil && c.OnStateUpdate != nil {
		c.OnStateUpdate(snap)
	}
	return snap, err
}

// Submit runs query through the analyzer and blocks until it resolves. A blank
// query or a submission while another one is in flight is rejected with
// ErrBlankQuery / ErrBusy and leaves the state unchanged. Analysis failures
// are not returned: they move the session to StatusError. Once issued, the
// request runs to completion even if ctx is canceled; ctx values still reach
// the analyzer.
func (c *Controller) Submit(ctx context.Context, query string) (State, error) {
	snap, err := c.dispatch(submitted{query: query})
	if err != nil {
		c.Logger.DebugContext(ctx, "Submission rejected", "reason", err)
		return snap, err
	}

	c.Logger.InfoContext(ctx, "Starting analysis", "query", query)

	result, err := c.analyzer.Analyze(context.WithoutCancel(ctx), query)
	if err == nil && result == nil {
		snap, _ = c.dispatch(failed{message: UnexpectedErrorMessage})
		return snap, nil
	}
	if err != nil {
		c.Logger.ErrorContext(ctx, "Analysis failed", "query", query, "error", err)
		snap, _ = c.dispatch(failed{message: errorMessage(err)})
		return snap, nil
	}

	snap, _ = c.dispatch(succeeded{result: result})
	c.Logger.InfoContext(ctx, "Analysis completed", "query", query, "sources", len(result.Sources), "history", len(snap.History))
	return snap, nil
}

// LoadHistoryItem makes a stored result current without issuing a request.
func (c *Controller) LoadHistoryItem(id string) (State, error) {
	c.mu.Lock()
	item, ok := c.state.history.Get(id)
	c.mu.Unlock()
	if !ok {
		return c.State(), ErrHistoryNotFound
	}
	return c.dispatch(historyLoaded{item: item})
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.snapshot()
}

// History returns the stored items, newest first.
func (c *Controller) History() []history.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.history.Items()
}

// Metrics scores the current result.
func (c *Controller) Metrics() credibility.Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return credibility.ForResult(c.state.result)
}
