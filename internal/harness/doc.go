// Package harness provides conformance testing for scene files.
//
// A scenario names a scene, compiles it, and checks properties of the
// compiled program. Programs are also compared against golden files.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	scene: ../scenes/reveal.yaml
//	assertions:
//	  - type: program_contains
//	    line: 'set b {} 2500ms then set b {alpha=1} 0s'
//	  - type: elapsed
//	    item: a
//	    ms: 4000
//	  - type: sample
//	    item: c
//	    at: 1s
//	    expect: { alpha: 0.5 }
//	  - type: item_count
//	    count: 4
//
// The scene path is relative to the scenario file.
//
// # Assertion Types
//
//   - program_contains: The program has a line equal to line
//   - definition: The definition of item contains every fragment of contains
//   - elapsed: The main chain of item ends at ms milliseconds
//   - sample: The attributes of item at time at match expect
//   - item_count: The program defines exactly count items
//
// Every run also checks that compiling twice yields the same program and
// that archiving it twice stores a single build.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/reveal.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
