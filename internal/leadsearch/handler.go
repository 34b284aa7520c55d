package leadsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wolfman30/client-search/pkg/logging"
)

// UserIDHeader is accepted by CORS and only used to tag log lines.
const UserIDHeader = "X-User-Id"

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type, " + UserIDHeader
	corsMaxAge       = "86400"
)

// Searcher runs one search.
type Searcher interface {
	Search(ctx context.Context, q FilterQuery) Result
}

// RequestRecorder counts handled requests by method and status.
type RequestRecorder interface {
	ObserveRequest(method string, status int)
}

// Request is the transport-neutral input to Handle.
type Request struct {
	Method string
	Params map[string]string
	UserID string
}

// Response is the transport-neutral output of Handle.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// SearchResponse is the JSON envelope returned for GET.
type SearchResponse struct {
	Clients   []Lead        `json:"clients"`
	Total     int           `json:"total"`
	Query     string        `json:"query"`
	Filters   SearchFilters `json:"filters"`
	Timestamp time.Time     `json:"timestamp"`
}

// SearchFilters echoes the filters that were applied.
type SearchFilters struct {
	Industry string `json:"industry"`
	MinScore int    `json:"minScore"`
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler handles client search requests over HTTP and Lambda
type Handler struct {
	service         Searcher
	logger          *logging.Logger
	metrics         RequestRecorder
	defaultMinScore int
	now             func() time.Time
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithRequestMetrics counts every handled request.
func WithRequestMetrics(m RequestRecorder) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithDefaultMinScore changes the floor used when minScore is absent.
func WithDefaultMinScore(score int) HandlerOption {
	return func(h *Handler) {
		h.defaultMinScore = score
	}
}

// WithResponseClock overrides the time source for the envelope timestamp.
func WithResponseClock(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler creates a new client search handler
func NewHandler(service Searcher, logger *logging.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	h := &Handler{
		service:         service,
		logger:          logger,
		defaultMinScore: DefaultMinScore,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle dispatches on method: OPTIONS answers the CORS preflight, GET runs
// the search, anything else is 405. An empty method counts as GET.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	var resp Response
	switch method {
	case http.MethodOptions:
		resp = preflight()
	case http.MethodGet:
		resp = h.search(ctx, req)
	default:
		resp = jsonResponse(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
	}

	if h.metrics != nil {
		h.metrics.ObserveRequest(method, resp.StatusCode)
	}
	return resp
}

func (h *Handler) search(ctx context.Context, req Request) Response {
	q, err := ParseRequest(req.Params, h.defaultMinScore)
	if err != nil {
		h.logger.Warn("invalid search request", "error", err, "user_id", req.UserID)
		if errors.Is(err, ErrInvalidMinScore) {
			return jsonResponse(http.StatusBadRequest, ErrorResponse{Error: ErrInvalidMinScore.Error()})
		}
		return jsonResponse(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
	}

	result := h.service.Search(ctx, q)
	clients := result.Clients
	if clients == nil {
		clients = []Lead{}
	}

	h.logger.Info("client search completed",
		"query", q.Text,
		"industry", q.Industry,
		"min_score", q.MinScore,
		"pool_size", result.PoolSize,
		"total", len(clients),
		"user_id", req.UserID,
	)

	return jsonResponse(http.StatusOK, SearchResponse{
		Clients: clients,
		Total:   len(clients),
		Query:   q.Text,
		Filters: SearchFilters{
			Industry: q.Industry,
			MinScore: q.MinScore,
		},
		Timestamp: h.now().UTC(),
	})
}

// ServeHTTP adapts Handle to net/http. Only the first value of each query
// parameter is used.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	resp := h.Handle(r.Context(), Request{
		Method: r.Method,
		Params: params,
		UserID: r.Header.Get(UserIDHeader),
	})

	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(resp.StatusCode)
	io.WriteString(w, resp.Body)
}

func preflight() Response {
	return Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  "*",
			"Access-Control-Allow-Methods": corsAllowMethods,
			"Access-Control-Allow-Headers": corsAllowHeaders,
			"Access-Control-Max-Age":       corsMaxAge,
		},
	}
}

// jsonResponse encodes v without HTML or non-ASCII escaping.
func jsonResponse(status int, v any) Response {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"internal error"}`)
	}
	return Response{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: strings.TrimSuffix(buf.String(), "\n"),
	}
}
