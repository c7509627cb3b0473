package query

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/roach88/applink/internal/store"
)

// Reader is the read side of the recipe dataset.
// *store.Store and *store.Lazy both satisfy it.
type Reader interface {
	ReadRecipes(ctx context.Context) (*store.Table, error)
	ReadRecipe(ctx context.Context, id string) (*store.Table, error)
	ReadIngredients(ctx context.Context, recipeID string) (*store.Table, error)
	ReadInstructions(ctx context.Context, recipeID string) (*store.Table, error)
}

// Result is the tabular answer to one request.
type Result struct {
	Request   Request
	RequestID string
	Columns   []string
	Rows      [][]sql.NullString
}

// Len returns the number of rows.
func (r *Result) Len() int {
	return len(r.Rows)
}

// Empty reports whether the request matched nothing.
func (r *Result) Empty() bool {
	return len(r.Rows) == 0
}

// Service executes recipe requests. Calls are synchronous; the service holds
// no per-request state and is safe for concurrent use if its Reader is.
type Service struct {
	reader  Reader
	logger  *slog.Logger
	metrics *Metrics
	ids     IDGenerator
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics records request counts on m.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithIDGenerator overrides request id generation (for deterministic tests).
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) { s.ids = g }
}

// New creates a Service reading from r.
func New(r Reader, opts ...Option) *Service {
	s := &Service{
		reader: r,
		logger: slog.Default(),
		ids:    UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Query parses path and executes it.
// Returns an *Error with CodeUnrecognizedRequest when the path has no route.
func (s *Service) Query(ctx context.Context, path string) (*Result, error) {
	req, err := Parse(path)
	if err != nil {
		s.metrics.observe(KindUnknown, OutcomeError)
		s.logger.Warn("unrecognized request", "path", path)
		return nil, err
	}
	return s.Do(ctx, req)
}

// Do executes an already parsed request.
func (s *Service) Do(ctx context.Context, req Request) (*Result, error) {
	requestID := s.ids.Generate()

	var (
		table *store.Table
		err   error
	)
	switch req.Kind {
	case KindList:
		table, err = s.reader.ReadRecipes(ctx)
	case KindRecipe:
		table, err = s.reader.ReadRecipe(ctx, req.RecipeID)
	case KindIngredients:
		table, err = s.reader.ReadIngredients(ctx, req.RecipeID)
	case KindInstructions:
		table, err = s.reader.ReadInstructions(ctx, req.RecipeID)
	default:
		s.metrics.observe(req.Kind, OutcomeError)
		return nil, unrecognized(req.Path)
	}

	if err != nil {
		s.metrics.observe(req.Kind, OutcomeError)
		s.logger.Error("query failed",
			"request_id", requestID,
			"path", req.Path,
			"kind", req.Kind.String(),
			"error", err,
		)
		return nil, &Error{Code: codeFor(err), Path: req.Path, Err: err}
	}

	result := &Result{
		Request:   req,
		RequestID: requestID,
		Columns:   table.Columns,
		Rows:      table.Rows,
	}

	outcome := OutcomeOK
	if result.Empty() {
		outcome = OutcomeEmpty
	}
	s.metrics.observe(req.Kind, outcome)
	s.logger.Debug("query",
		"request_id", requestID,
		"path", req.Path,
		"kind", req.Kind.String(),
		"rows", result.Len(),
	)

	return result, nil
}
