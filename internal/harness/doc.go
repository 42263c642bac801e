// Package harness runs conversion suites: YAML files listing conversions
// and their expected results or error codes.
//
// # Suite Format
//
//	name: chemeng
//	description: "Reference chemical engineering conversions"
//	tolerance: 1e-3        # absolute; defaults to 1e-3
//	table: extra.cue       # optional, relative to the suite file
//	cases:
//	  - name: velocity
//	    value: 0.01
//	    from: m/s
//	    to: ft/min
//	    expect: 1.968503937
//	  - name: energy is not power
//	    value: 1
//	    from: J
//	    to: W
//	    expect_error: INCOMPATIBLE_DIMENSIONS
//
// Each case sets exactly one of expect and expect_error. Unknown fields are
// rejected.
//
// # Golden Files
//
// RunWithGolden snapshots case names, pass/fail and error codes under
// testdata/golden. Snapshots carry no numeric results.
package harness
