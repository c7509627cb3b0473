package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/roach88/applink/internal/dataset"
	"github.com/roach88/applink/internal/query"
	"github.com/roach88/applink/internal/store"
	"github.com/roach88/applink/internal/testutil"
)

// Harness is the scenario execution engine.
type Harness struct {
	service *query.Service
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a freshly packaged dataset in its own temporary
// directory, removed when Run returns. Request ids are fixed so traces are
// reproducible.
//
// Execution flow:
// 1. Load the fixture and package it into a read-only dataset
// 2. Send each flow step through the query service and check its expect clause
// 3. Evaluate assertions
// 4. Return result with pass/fail, trace, and errors
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	fixture, err := loadFixture(scenario.Fixture)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "applink-harness-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "recipes.db")
	if err := dataset.Build(ctx, fixture, path); err != nil {
		return nil, fmt.Errorf("failed to build scenario dataset: %w", err)
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario dataset: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := &Harness{
		service: query.New(st,
			query.WithLogger(logger),
			query.WithIDGenerator(testutil.NewFixedIDGenerator(scenario.requestID())),
		),
		logger: logger,
	}

	result := NewResult()
	for i, step := range scenario.Flow {
		h.executeStep(ctx, i, step, result)
	}

	for i, assertion := range scenario.Assertions {
		if err := evaluateAssertion(ctx, h.service, result.Trace, assertion); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	return result, nil
}

func loadFixture(name string) (*dataset.Fixture, error) {
	if name == SampleFixture {
		return dataset.Sample(), nil
	}
	f, err := dataset.LoadFixture(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario fixture: %w", err)
	}
	return f, nil
}

// executeStep runs one flow step and records its trace event.
func (h *Harness) executeStep(ctx context.Context, i int, step FlowStep, result *Result) {
	event := TraceEvent{Path: step.Query, Kind: query.KindUnknown.String()}

	var columns []string
	res, err := h.service.Query(ctx, step.Query)
	if err != nil {
		event.Error = errorCode(err)
		if req, perr := query.Parse(step.Query); perr == nil {
			event.Kind = req.Kind.String()
		}
	} else {
		event.Kind = res.Request.Kind.String()
		event.RequestID = res.RequestID
		event.Rows = res.Len()
		columns = res.Columns
	}
	result.AddTrace(event)

	h.logger.Debug("flow step", "seq", event.Seq, "path", event.Path, "kind", event.Kind)

	if step.Expect == nil {
		return
	}
	for _, msg := range checkExpect(*step.Expect, event, columns) {
		result.AddError(fmt.Sprintf("flow[%d] %s: %s", i, step.Query, msg))
	}
}

func errorCode(err error) string {
	var qerr *query.Error
	if errors.As(err, &qerr) {
		return string(qerr.Code)
	}
	return err.Error()
}

func checkExpect(expect ExpectClause, event TraceEvent, columns []string) []string {
	var msgs []string
	if expect.Error != event.Error {
		if expect.Error == "" {
			msgs = append(msgs, fmt.Sprintf("unexpected error %s", event.Error))
		} else {
			msgs = append(msgs, fmt.Sprintf("expected error %s, got %q", expect.Error, event.Error))
		}
	}
	if expect.Kind != "" && expect.Kind != event.Kind {
		msgs = append(msgs, fmt.Sprintf("expected kind %s, got %s", expect.Kind, event.Kind))
	}
	if expect.Rows != nil && *expect.Rows != event.Rows {
		msgs = append(msgs, fmt.Sprintf("expected %d rows, got %d", *expect.Rows, event.Rows))
	}
	if expect.Columns != nil && !slices.Equal(expect.Columns, columns) {
		msgs = append(msgs, fmt.Sprintf("expected columns %v, got %v", expect.Columns, columns))
	}
	return msgs
}
