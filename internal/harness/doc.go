// Package harness provides conformance testing for the trurl command.
//
// Scenarios describe one invocation of the command and what it must produce.
// The harness runs the command in-process, with a deterministic cycle ID
// generator, and compares stdout, the exit code and stderr.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: append_path_and_query
//	description: "Path segments and query pairs are appended in order"
//	args: ["https://example.com/a", "--append", "path=b", "--append", "query=x=1"]
//	stdin: ""
//	cycle_id: "scenario-cycle"
//	expect:
//	  stdout: "https://example.com/a/b?x=1\n"
//	  exit_code: 0
//	  stderr_contains:
//	    - "level=WARN"
//
// Every expect field is optional except exit_code, which defaults to 0.
// An absent stdout is not compared; stderr_contains lists substrings that
// must all appear.
//
// # Golden Files
//
// RunWithGolden additionally snapshots stdout in
// testdata/golden/{scenario.Name}.golden. To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/redirect.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
