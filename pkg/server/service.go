package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mikeboe/verifact/pkg/credibility"
	"github.com/mikeboe/verifact/pkg/history"
	"github.com/mikeboe/verifact/pkg/session"
)

// ErrRateLimited is returned when submissions arrive faster than the limiter allows.
var ErrRateLimited = errors.New("too many submissions, try again shortly")

// Service exposes the session controller to the HTTP and MCP surfaces and
// records metrics for every submission.
type Service struct {
	Session *session.Controller
	limiter *rate.Limiter
	Logger  *slog.Logger
}

func NewService(ctrl *session.Controller, limit rate.Limit, burst int) *Service {
	return &Service{
		Session: ctrl,
		limiter: rate.NewLimiter(limit, burst),
		Logger:  slog.Default(),
	}
}

// Analyze submits query and waits for it to resolve.
func (s *Service) Analyze(ctx context.Context, query string) (session.State, error) {
	if strings.TrimSpace(query) == "" {
		SubmissionsRejected.WithLabelValues("blank").Inc()
		return s.Session.State(), session.ErrBlankQuery
	}
	// A busy session would reject anyway; don't spend a token on it.
	if st := s.Session.State(); st.Status == session.StatusAnalyzing {
		SubmissionsRejected.WithLabelValues("busy").Inc()
		return st, session.ErrBusy
	}
	if !s.limiter.Allow() {
		SubmissionsRejected.WithLabelValues("rate_limited").Inc()
		s.Logger.WarnContext(ctx, "Submission rate limited")
		return s.Session.State(), ErrRateLimited
	}

	start := time.Now()
	st, err := s.Session.Submit(ctx, query)
	if err != nil {
		if errors.Is(err, session.ErrBusy) {
			SubmissionsRejected.WithLabelValues("busy").Inc()
		}
		return st, err
	}

	AnalysesTotal.WithLabelValues(string(st.Status)).Inc()
	AnalysisDuration.Observe(time.Since(start).Seconds())
	if st.Status == session.StatusCompleted && st.Result != nil {
		SourcesPerAnswer.Observe(float64(len(st.Result.Sources)))
	}
	HistoryItems.Set(float64(len(st.History)))

	return st, nil
}

// LoadHistory makes a history item current.
func (s *Service) LoadHistory(id string) (session.State, error) {
	return s.Session.LoadHistoryItem(id)
}

// State returns the current session snapshot.
func (s *Service) State() session.State {
	return s.Session.State()
}

// History returns stored results, newest first.
func (s *Service) History() []history.Item {
	return s.Session.History()
}

// Credibility scores the current result.
func (s *Service) Credibility() credibility.Metrics {
	return s.Session.Metrics()
}
