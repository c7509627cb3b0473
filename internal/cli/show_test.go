package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/applink/internal/dataset"
	"github.com/roach88/applink/internal/query"
	"github.com/roach88/applink/internal/testutil"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestShow_TextGolden(t *testing.T) {
	dbPath := testutil.SampleDataset(t)

	out, err := execute(t, NewShowCommand(testRootOptions("text")), "--db", dbPath, "7")
	require.NoError(t, err)

	// Regenerate with: go test ./internal/cli -run TestShow_TextGolden -update
	newGolden(t).Assert(t, "show_pancakes", []byte(out))
}

func TestShow_JSONGolden(t *testing.T) {
	dbPath := testutil.SampleDataset(t)

	out, err := execute(t, NewShowCommand(testRootOptions("json")), "--db", dbPath, "7")
	require.NoError(t, err)

	newGolden(t).Assert(t, "show_pancakes_json", []byte(out))
}

func TestShow_AppLink(t *testing.T) {
	dbPath := testutil.SampleDataset(t)

	out, err := execute(t, NewShowCommand(testRootOptions("text")),
		"--db", dbPath, "http://recipe-app.com/recipe/3")
	require.NoError(t, err)
	assert.Contains(t, out, "Guacamole\n")
	assert.Contains(t, out, "Ingredients (4)")
	assert.Contains(t, out, "Step 3\n")
}

func TestShow_StepTitlesArePositions(t *testing.T) {
	dbPath := testutil.Dataset(t, &dataset.Fixture{Recipes: []dataset.Recipe{{
		ID:    "5",
		Title: "Porridge",
		Instructions: []dataset.Step{
			{StepNumber: 10, Description: "Boil the oats"},
			{StepNumber: 20, Description: "Stir in the milk"},
		},
	}}})

	out, err := execute(t, NewShowCommand(testRootOptions("text")), "--db", dbPath, "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Step 1\n")
	assert.Contains(t, out, "Step 2\n")
	assert.NotContains(t, out, "Step 10")
	assert.NotContains(t, out, "Step 20")
}

func TestShow_NoSteps(t *testing.T) {
	dbPath := testutil.SampleDataset(t)

	out, err := execute(t, NewShowCommand(testRootOptions("text")), "--db", dbPath, "21")
	require.NoError(t, err)
	assert.Contains(t, out, "Iced Tea\n")
	assert.NotContains(t, out, "Step ")
}

func TestShow_NotFoundIsNotice(t *testing.T) {
	dbPath := testutil.SampleDataset(t)

	out, err := execute(t, NewShowCommand(testRootOptions("text")), "--db", dbPath, "999")
	require.NoError(t, err)
	assert.Equal(t, "No match for deep link content://com.sopan.app_link/recipe/999\n", out)
}

func TestShow_NotFoundJSON(t *testing.T) {
	dbPath := testutil.SampleDataset(t)

	out, err := execute(t, NewShowCommand(testRootOptions("json")), "--db", dbPath, "999")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "test-request-default", resp.TraceID)
}

func TestShow_DatasetUnavailable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")

	_, err := execute(t, NewShowCommand(testRootOptions("text")), "--db", dbPath, "7")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, query.IsStorageUnavailable(err))
}

func TestShow_LinkWithoutID(t *testing.T) {
	dbPath := testutil.SampleDataset(t)

	_, err := execute(t, NewShowCommand(testRootOptions("text")), "--db", dbPath, "http://recipe-app.com/")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid app link")
}

func TestShow_RequiresArg(t *testing.T) {
	_, err := execute(t, NewShowCommand(testRootOptions("text")))
	require.Error(t, err)
}
