// Command streamlog writes messages through the streamlog backend, in
// the manner of logger(1), and validates logging configuration files.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
