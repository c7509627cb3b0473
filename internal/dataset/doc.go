// Package dataset packages recipe fixtures into the SQLite file that the
// read side (internal/store) ships with.
//
// A fixture is YAML:
//
//	recipes:
//	  - id: "7"
//	    title: Pancakes
//	    prep_time: 20 min
//	    ingredients:
//	      - {amount: 2 cups, description: flour}
//	    instructions:
//	      - {step_number: 1, description: Whisk the batter.}
//
// Fixtures are checked against an embedded CUE schema before anything is
// written. Build writes to a temporary file next to the target and moves it
// into place atomically, so a failed build never leaves a half-written dataset.
package dataset
