// Command bminorc is the B-Minor compiler driver.
package main

import (
	"os"

	"github.com/bminor/bminorc/cmd/bminorc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
