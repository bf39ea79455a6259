// Command geovalidate validates the geometries of a vector layer against
// the topology, shape-quality, cardinality, and network connectivity
// checks, replacing the older per-feature demo mains with a single cobra
// CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
