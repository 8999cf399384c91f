// Package harness runs conformance scenarios against the overlap engine.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: sample
//	description: "Reference input yields five overlaps"
//	input: |
//	  0,9 -> 5,9
//	  8,0 -> 0,8
//	bound: "10"        # optional, "auto" by default
//	policy: lenient    # optional, lenient or strict
//	expect:
//	  overlaps: 5
//	  kept: 6
//	  size: 10
//	assertions:
//	  - type: cell
//	    x: 7
//	    y: 4
//	    count: 2
//
// input_file may replace input; it is resolved relative to the scenario file.
// A scenario with neither uses the built-in sample.
//
// # Assertion Types
//
//   - cell: the cell at (x, y) holds exactly count hits
//   - threshold: exactly count cells have at least threshold hits
//   - rejected_line: line was rejected with the given parser kind
//
// # Deterministic Testing
//
// Run IDs come from testutil.CountingRunIDGenerator and the snapshot leaves
// them out, so golden files are byte-stable.
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/sample.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
package harness
