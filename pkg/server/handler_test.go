package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/mikeboe/verifact/pkg/analysis"
	"github.com/mikeboe/verifact/pkg/credibility"
	"github.com/mikeboe/verifact/pkg/history"
	"github.com/mikeboe/verifact/pkg/session"
)

type stubAnalyzer struct {
	calls int
	err   error
}

func (s *stubAnalyzer) Analyze(ctx context.Context, query string) (*analysis.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &analysis.Result{
		Text: "grounded: " + query,
		Sources: []analysis.Source{
			{URI: "https://www.example.com/a", Title: "A"},
			{URI: "https://example.org/b", Title: "B"},
			{URI: "https://example.net/c", Title: "C"},
		},
		Timestamp: time.Now().Add(time.Duration(s.calls) * time.Second),
	}, nil
}

func newTestRouter(t *testing.T, a session.Analyzer, limit rate.Limit, burst int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := NewService(session.NewController(a, history.DefaultCapacity), limit, burst)
	return NewRouter(NewHandler(svc))
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeEndpoint(t *testing.T) {
	stub := &stubAnalyzer{}
	r := newTestRouter(t, stub, rate.Inf, 1)

	rec := do(r, http.MethodPost, "/api/analyze", AnalyzeRequest{Query: "what happened?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var st session.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, session.StatusCompleted, st.Status)
	require.NotNil(t, st.Result)
	assert.Equal(t, "grounded: what happened?", st.Result.Text)
	assert.Len(t, st.Result.Sources, 3)
	assert.Len(t, st.History, 1)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	rec = do(r, http.MethodGet, "/api/credibility", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var m credibility.Metrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 82, m.Score)
	assert.Equal(t, credibility.LevelVeryHigh, m.Level)
}

func TestAnalyzeEndpointProviderFailure(t *testing.T) {
	r := newTestRouter(t, &stubAnalyzer{err: errors.New("upstream 503")}, rate.Inf, 1)

	rec := do(r, http.MethodPost, "/api/analyze", AnalyzeRequest{Query: "q"})
	require.Equal(t, http.StatusOK, rec.Code)

	var st session.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, session.StatusError, st.Status)
	assert.Equal(t, "upstream 503", st.Error)
}

func TestAnalyzeEndpointRejections(t *testing.T) {
	stub := &stubAnalyzer{}
	r := newTestRouter(t, stub, rate.Every(time.Hour), 1)

	rec := do(r, http.MethodPost, "/api/analyze", AnalyzeRequest{Query: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/api/analyze", AnalyzeRequest{Query: "first"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodPost, "/api/analyze", AnalyzeRequest{Query: "second"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	bad := httptest.NewRecorder()
	r.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	assert.Equal(t, 1, stub.calls)
}

func TestHistoryEndpoints(t *testing.T) {
	stub := &stubAnalyzer{}
	r := newTestRouter(t, stub, rate.Inf, 1)

	rec := do(r, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	do(r, http.MethodPost, "/api/analyze", AnalyzeRequest{Query: "one"})
	do(r, http.MethodPost, "/api/analyze", AnalyzeRequest{Query: "two"})

	rec = do(r, http.MethodGet, "/api/history", nil)
	var items []history.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "two", items[0].Query)

	rec = do(r, http.MethodPost, "/api/history/"+items[1].ID+"/load", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st session.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "one", st.Query)
	assert.Equal(t, session.StatusCompleted, st.Status)
	assert.Equal(t, 2, stub.calls)

	rec = do(r, http.MethodPost, "/api/history/unknown/load", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(r, http.MethodGet, "/api/session", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "one", st.Query)
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, &stubAnalyzer{}, rate.Inf, 1)

	rec := do(r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	do(r, http.MethodPost, "/api/analyze", AnalyzeRequest{Query: "metrics please"})
	rec = do(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "verifact_analyses_total")
}

func TestRequestIDPropagation(t *testing.T) {
	r := newTestRouter(t, &stubAnalyzer{}, rate.Inf, 1)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(session.ErrBlankQuery))
	assert.Equal(t, http.StatusConflict, statusFor(session.ErrBusy))
	assert.Equal(t, http.StatusNotFound, statusFor(session.ErrHistoryNotFound))
	assert.Equal(t, http.StatusTooManyRequests, statusFor(ErrRateLimited))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("other")))
}
