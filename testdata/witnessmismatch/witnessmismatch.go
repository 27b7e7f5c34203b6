// Build-failure fixture: a witness minted by one cell must be rejected by a
// cell with a different tag. TestWitnessMismatchFailsToCompile builds this
// package and requires the witness type error below.
package main

import "github.com/synclabs/taggedcell"

type dbTag struct{}
type cacheTag struct{}

var dbCell taggedcell.Cell[string, dbTag]
var cacheCell taggedcell.Cell[string, cacheTag]

func main() {
	w := dbCell.Init(func() string { return "postgres://localhost" })
	_ = *dbCell.Get(w)
	_ = *cacheCell.Get(w) // Witness[dbTag] does not satisfy Witness[cacheTag].
}
