// Command tickcounter times code with the CPU tick counter and compares it
// with the wall clock.
package main

import (
	"os"

	"github.com/wesleyorama2/tickcounter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
