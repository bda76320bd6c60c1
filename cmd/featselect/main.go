// Command featselect applies a feature-selection method to a delimited
// feature table and writes the reduced table or the selected feature names.
//
// The table format follows the original pipeline convention: a header row,
// the first column holding the example identifier, one column named Class
// (configurable) holding the label, and the remaining columns holding
// numeric or binary features.
package main

import (
	"os"
)

func main() {
	// Bare invocation prints usage and exits cleanly, matching the
	// original tool's behavior.
	if len(os.Args) <= 1 {
		_ = rootCmd.Help()
		return
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
