package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an expectation fails.
// It includes the captured stderr to help debug the failure.
type AssertionError struct {
	Field    string // Expectation that failed: stdout, exit_code, stderr
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Stderr   string // Full stderr for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Stderr != "" {
		buf.WriteString("\n  Stderr:\n")
		for _, line := range strings.Split(strings.TrimRight(e.Stderr, "\n"), "\n") {
			fmt.Fprintf(&buf, "    %s\n", line)
		}
	}

	return buf.String()
}

// EvaluateExpect checks result against expect and returns one message per
// failed expectation. An empty slice means everything matched.
func EvaluateExpect(result *Result, expect Expect) []string {
	var errs []string

	if result.ExitCode != expect.ExitCode {
		errs = append(errs, (&AssertionError{
			Field:    "exit_code",
			Expected: fmt.Sprintf("%d", expect.ExitCode),
			Actual:   fmt.Sprintf("%d", result.ExitCode),
			Stderr:   result.Stderr,
		}).Error())
	}

	if expect.Stdout != nil && result.Stdout != *expect.Stdout {
		errs = append(errs, (&AssertionError{
			Field:    "stdout",
			Expected: fmt.Sprintf("%q", *expect.Stdout),
			Actual:   fmt.Sprintf("%q", result.Stdout),
			Stderr:   result.Stderr,
		}).Error())
	}

	for _, sub := range expect.StderrContains {
		if !strings.Contains(result.Stderr, sub) {
			errs = append(errs, (&AssertionError{
				Field:    "stderr",
				Expected: fmt.Sprintf("contains %q", sub),
				Actual:   "not found",
				Stderr:   result.Stderr,
			}).Error())
		}
	}

	return errs
}
