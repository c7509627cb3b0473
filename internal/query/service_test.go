package query

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/applink/internal/store"
	"github.com/roach88/applink/internal/testutil"
)

var (
	_ Reader = (*store.Store)(nil)
	_ Reader = (*store.Lazy)(nil)
)

func newSampleService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	lazy := store.NewLazy(testutil.SampleDataset(t))
	t.Cleanup(func() { lazy.Close() })
	return New(lazy, opts...)
}

func TestQuery_Recipe(t *testing.T) {
	svc := newSampleService(t)

	res, err := svc.Query(context.Background(), "recipe/7")
	require.NoError(t, err)

	assert.Equal(t, KindRecipe, res.Request.Kind)
	assert.Equal(t, store.RecipeColumns, res.Columns)
	require.Equal(t, 1, res.Len())
	assert.Equal(t, "7", res.Rows[0][0].String)
	assert.Equal(t, "Pancakes", res.Rows[0][1].String)
}

func TestQuery_Ingredients(t *testing.T) {
	svc := newSampleService(t)

	res, err := svc.Query(context.Background(), "recipe/ingredients/7")
	require.NoError(t, err)

	assert.Equal(t, store.IngredientColumns, res.Columns)
	require.Equal(t, 3, res.Len())
	for _, row := range res.Rows {
		assert.True(t, row[0].Valid, "amount must be present")
		assert.True(t, row[1].Valid, "description must be present")
	}
}

func TestQuery_Instructions(t *testing.T) {
	svc := newSampleService(t)

	res, err := svc.Query(context.Background(), "recipe/instructions/7")
	require.NoError(t, err)

	assert.Equal(t, store.InstructionColumns, res.Columns)
	assert.Equal(t, 2, res.Len())
}

func TestQuery_List(t *testing.T) {
	svc := newSampleService(t)

	res, err := svc.Query(context.Background(), "recipe")
	require.NoError(t, err)

	assert.Equal(t, KindList, res.Request.Kind)
	assert.Equal(t, 4, res.Len())
}

func TestQuery_AbsentRecipeIsEmptyNotError(t *testing.T) {
	svc := newSampleService(t)

	for _, path := range []string{"recipe/999", "recipe/ingredients/999", "recipe/instructions/999"} {
		t.Run(path, func(t *testing.T) {
			res, err := svc.Query(context.Background(), path)
			require.NoError(t, err)
			assert.True(t, res.Empty())
			assert.NotNil(t, res.Rows)
		})
	}
}

func TestQuery_Unrecognized(t *testing.T) {
	svc := newSampleService(t)

	res, err := svc.Query(context.Background(), "recipe/bogus/segment/too/long")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, IsUnrecognized(err))
	assert.False(t, IsStorageUnavailable(err))
}

func TestQuery_StorageUnavailable(t *testing.T) {
	lazy := store.NewLazy(filepath.Join(t.TempDir(), "missing.db"))
	svc := New(lazy)

	_, err := svc.Query(context.Background(), "recipe/7")
	require.Error(t, err)
	assert.True(t, IsStorageUnavailable(err))
	assert.False(t, IsUnrecognized(err))

	var qe *Error
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, CodeStorageUnavailable, qe.Code)
	assert.Equal(t, "recipe/7", qe.Path)
}

type failingReader struct{ err error }

func (f failingReader) ReadRecipes(context.Context) (*store.Table, error) { return nil, f.err }
func (f failingReader) ReadRecipe(context.Context, string) (*store.Table, error) {
	return nil, f.err
}
func (f failingReader) ReadIngredients(context.Context, string) (*store.Table, error) {
	return nil, f.err
}
func (f failingReader) ReadInstructions(context.Context, string) (*store.Table, error) {
	return nil, f.err
}

func TestDo_QueryFailed(t *testing.T) {
	boom := errors.New("disk I/O error")
	svc := New(failingReader{err: boom})

	_, err := svc.Do(context.Background(), NewRequest(KindIngredients, "7"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))

	var qe *Error
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, CodeQueryFailed, qe.Code)
}

func TestDo_UnknownKind(t *testing.T) {
	svc := newSampleService(t)

	_, err := svc.Do(context.Background(), Request{Kind: KindUnknown})
	require.Error(t, err)
	assert.True(t, IsUnrecognized(err))
}

func TestDo_RequestIDFromGenerator(t *testing.T) {
	svc := newSampleService(t, WithIDGenerator(testutil.NewFixedIDGenerator("req-42")))

	res, err := svc.Do(context.Background(), NewRequest(KindRecipe, "7"))
	require.NoError(t, err)
	assert.Equal(t, "req-42", res.RequestID)
}

func TestDo_DefaultRequestIDIsUUID(t *testing.T) {
	svc := newSampleService(t)

	res, err := svc.Do(context.Background(), NewRequest(KindRecipe, "7"))
	require.NoError(t, err)
	assert.Len(t, res.RequestID, 36)
}

func TestQuery_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := newSampleService(t,
		WithLogger(logger),
		WithIDGenerator(testutil.NewFixedIDGenerator("req-log")),
	)

	_, err := svc.Query(context.Background(), "recipe/ingredients/7")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"request_id":"req-log"`)
	assert.Contains(t, out, `"kind":"ingredients"`)
	assert.Contains(t, out, `"rows":3`)
}

func TestMetrics_CountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	svc := newSampleService(t, WithMetrics(m))
	ctx := context.Background()

	_, err := svc.Query(ctx, "recipe/7")
	require.NoError(t, err)
	_, err = svc.Query(ctx, "recipe/999")
	require.NoError(t, err)
	_, err = svc.Query(ctx, "recipe/ingredients/7")
	require.NoError(t, err)
	_, err = svc.Query(ctx, "nope")
	require.Error(t, err)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.Requests(KindRecipe, OutcomeOK)))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Requests(KindRecipe, OutcomeEmpty)))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Requests(KindIngredients, OutcomeOK)))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Requests(KindUnknown, OutcomeError)))

	count, err := promtest.GatherAndCount(reg, "applink_query_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe(KindRecipe, OutcomeOK) })
}
