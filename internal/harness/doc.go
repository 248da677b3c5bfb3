// Package harness runs conformance scenarios against the validator compiler.
//
// # Scenario Format
//
// Scenarios are YAML files. Each names one IR document, either by path
// (relative to the scenario file) or inline, and states what compiling it
// must produce:
//
//	name: input_comparator
//	description: "Inputs and comparators become trace-wrapped clauses"
//	ir: programs/reactor.json
//	module_name: Plant.Reactor      # optional
//	expect:
//	  clauses:
//	    - {label: input, condition: x1, kind: input}
//	    - {label: comparator, condition: "temp < 710", kind: comparator}
//	  contains:
//	    - 'traceIfFalse "Condition 1 failed: comparator" (temp < 710)'
//	  kinds: {input: 1, comparator: 1}
//	golden: true
//
// A scenario that must fail names the diagnostic instead:
//
//	expect:
//	  error: {code: E201, key: counters}
//
// # Golden Files
//
// With golden: true the emitted script is compared byte for byte against
// golden/<scenario file name>.golden next to the scenario. The test command
// regenerates them with --update; Go tests use AssertGolden, which is driven
// by goldie's -update flag.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/reactor.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
