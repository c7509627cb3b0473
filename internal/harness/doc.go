// Package harness runs declarative conformance scenarios against a recipe
// dataset.
//
// A scenario packages a fixture into a throwaway dataset, sends a flow of
// request paths through the query service, and checks the trace and the
// assembled recipes against its assertions.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	fixture: sample            # or a fixture path relative to the scenario file
//	request_id: test-request-1 # optional fixed request id
//	flow:
//	  - query: recipe/7
//	    expect:
//	      kind: recipe
//	      rows: 1
//	  - query: recipe/7/extra
//	    expect:
//	      error: UNRECOGNIZED_REQUEST
//	assertions:
//	  - type: recipe
//	    id: "7"
//	    expect: { title: Pancakes, ingredients: 3, steps: 2 }
//	  - type: not_found
//	    id: "999"
//	  - type: list_order
//	    ids: ["12", "21", "3", "7"]
//
// # Assertion Types
//
//   - recipe: Loads a recipe and verifies its fields and child counts
//   - not_found: Verifies a recipe id resolves to nothing
//   - list_order: Verifies the full listing returns ids in the given order
//   - trace_count: Verifies how many flow steps produced a request kind
package harness
