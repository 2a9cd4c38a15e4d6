package harness

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/roach88/trurl/internal/cli"
	"github.com/roach88/trurl/internal/testutil"
)

// Harness is the test execution engine.
// It runs the trurl command in-process with a deterministic cycle ID.
type Harness struct {
	ctx context.Context
}

// Run executes a test scenario and returns the result.
//
// Each scenario gets a fresh command and fresh buffers, so scenarios never
// see each other's flags or output.
//
// Execution flow:
// 1. Validate the scenario
// 2. Run the command with the scenario's args and stdin
// 3. Compare stdout, exit code and stderr with the expectations
// 4. Return result with pass/fail, captured output and errors
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is nil")
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	h := &Harness{ctx: ctx}
	result := h.execute(scenario)

	for _, errMsg := range EvaluateExpect(result, scenario.Expect) {
		result.AddError(errMsg)
	}
	return result, nil
}

// execute runs the command the way main does: errors are printed to stderr
// and turned into an exit code.
func (h *Harness) execute(s *Scenario) *Result {
	var stdout, stderr bytes.Buffer

	cmd := cli.NewTransformCommand(&cli.RootOptions{
		IDs: testutil.NewFixedIDGenerator(s.CycleID),
	})
	// A nil slice would make cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, s.Args...))
	cmd.SetIn(strings.NewReader(s.Stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(h.ctx)
	if err != nil {
		cli.PrintError(&stderr, err)
	}

	result := NewResult()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	result.ExitCode = cli.GetExitCode(err)
	return result
}
