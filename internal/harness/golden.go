package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/natefinch/atomic"
	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot captures the complete trace for a scenario execution.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	RequestID    string       `json:"request_id"`
	Trace        []TraceEvent `json:"trace"`
}

// Snapshot builds the golden snapshot of a scenario's result.
func Snapshot(scenario *Scenario, result *Result) TraceSnapshot {
	return TraceSnapshot{
		ScenarioName: scenario.Name,
		RequestID:    scenario.requestID(),
		Trace:        result.Trace,
	}
}

// Marshal renders the snapshot as indented JSON with a trailing newline.
func (s TraceSnapshot) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trace: %w", err)
	}
	return append(data, '\n'), nil
}

// GoldenPath returns the golden file for a scenario file:
// <dir>/golden/<basename>.golden.
func GoldenPath(scenarioFile string) string {
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(scenarioFile), "golden", name+".golden")
}

// WriteGolden atomically replaces the golden file at path.
func WriteGolden(path string, snapshot TraceSnapshot) error {
	data, err := snapshot.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether snapshot matches the golden file at path.
func CompareGolden(path string, snapshot TraceSnapshot) (bool, error) {
	want, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	got, err := snapshot.Marshal()
	if err != nil {
		return false, err
	}
	return bytes.Equal(want, got), nil
}

// RunWithGolden loads and executes the scenario in scenarioFile and compares
// its trace against the same golden file the test command uses (see
// GoldenPath).
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenarioFile string) (*Result, error) {
	t.Helper()

	scenario, err := LoadScenario(scenarioFile)
	if err != nil {
		return nil, err
	}

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}

	data, err := Snapshot(scenario, result).Marshal()
	if err != nil {
		return nil, err
	}

	golden := GoldenPath(scenarioFile)
	g := goldie.New(t,
		goldie.WithFixtureDir(filepath.Dir(golden)),
		goldie.WithNameSuffix(filepath.Ext(golden)),
	)
	g.Assert(t, strings.TrimSuffix(filepath.Base(golden), filepath.Ext(golden)), data)

	return result, nil
}
