// Command skychart serves an interactive sky chart of the Messier catalog.
//
// Usage:
//
//	skychart serve --csv Messier_data.csv --port 8050
//	skychart validate Messier_data.csv
//	skychart export --format csv > normalised.csv
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
