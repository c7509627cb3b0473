package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"github.com/roach88/applink/internal/testutil"
)

// testRootOptions returns options with a fixed request id for stable output.
func testRootOptions(format string) *RootOptions {
	return &RootOptions{Format: format, IDs: testutil.NewFixedIDGenerator("")}
}

// execute runs cmd with args and returns stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
