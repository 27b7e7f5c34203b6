package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/synclabs/taggedcell/linters/tagcheck"
)

func main() {
	multichecker.Main(
		tagcheck.Analyzer,
	)
}
