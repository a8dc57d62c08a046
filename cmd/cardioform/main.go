// Command cardioform serves the heart-disease intake form and classifies
// clinical values from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
