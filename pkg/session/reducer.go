package session

import (
	"errors"
	"strings"

	"github.com/mikeboe/verifact/pkg/analysis"
	"github.com/mikeboe/verifact/pkg/history"
)

var errNotAnalyzing = errors.New("no analysis in progress")

// state is the mutable record owned by the controller.
type state struct {
	query   string
	status  Status
	result  *analysis.Result
	err     string
	history *history.List
}

type event interface {
	apply(s *state) error
}

type submitted struct {
	query string
}

type succeeded struct {
	result *analysis.Result
}

type failed struct {
	message string
}

type historyLoaded struct {
	item history.Item
}

func (e submitted) apply(s *state) error {
	if strings.TrimSpace(e.query) == "" {
		return ErrBlankQuery
	}
	if s.status == StatusAnalyzing {
		return ErrBusy
	}
	s.query = e.query
	s.status = StatusAnalyzing
	s.result = nil
	s.err = ""
	return nil
}

func (e succeeded) apply(s *state) error {
	if s.status != StatusAnalyzing {
		return errNotAnalyzing
	}
	s.status = StatusCompleted
	s.result = e.result
	s.err = ""
	s.history.Push(s.query, *e.result)
	return nil
}

func (e failed) apply(s *state) error {
	if s.status != StatusAnalyzing {
		return errNotAnalyzing
	}
	s.status = StatusError
	s.result = nil
	s.err = e.message
	return nil
}

func (e historyLoaded) apply(s *state) error {
	if s.status == StatusAnalyzing {
		return ErrBusy
	}
	result := e.item.Result
	s.query = e.item.Query
	s.status = StatusCompleted
	s.result = &result
	s.err = ""
	return nil
}

// reduce is the only place state transitions happen. On error the state is
// left untouched.
func reduce(s *state, ev event) error {
	next := *s
	if err := ev.apply(&next); err != nil {
		return err
	}
	*s = next
	return nil
}

func (s *state) snapshot() State {
	return State{
		Query:   s.query,
		Status:  s.status,
		Result:  s.result,
		Error:   s.err,
		History: s.history.Items(),
	}
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return UnexpectedErrorMessage
	}
	return err.Error()
}
