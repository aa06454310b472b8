// Command validate-data checks the embedded ISO 3166 dataset: decode,
// key-format invariants, and a set of known-answer resolutions.
//
// Usage:
//
//	go run ./cmd/validate-data
//
// Run after editing data/iso3166.json.
package main

import (
	"fmt"
	"os"

	"github.com/andreiashu/iso3166"
)

func main() {
	fmt.Println("Validating embedded ISO 3166 dataset...")

	if err := iso3166.ValidateDataset(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Dataset OK.")
}
