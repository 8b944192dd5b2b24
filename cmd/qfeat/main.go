// Command qfeat extracts question-classification features and loads
// annotated question corpora.
//
// Usage:
//
//	qfeat extract "What city is the capital of France?"
//	qfeat extract --type LOC --subtype city "What city is the capital of France?"
//	qfeat load --corpus data/trec --prefix train --ext .label --chunk-ext .chunks --db runs.db
//	qfeat runs --db runs.db
//	qfeat types
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
