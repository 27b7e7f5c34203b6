// want package:"cells per tag: .*a.CrossTag=1 .*a.fieldTag=2 .*a.loneTag=1 .*a.pairTag=2 .*a.sharedTag=2"
// The comment above matches the package fact that tagcheck exports for this
// package: the per-tag declaration counts, sorted by tag.

package a

import "github.com/synclabs/taggedcell"

type loneTag struct{}
type sharedTag struct{}
type pairTag struct{}
type fieldTag struct{}

// CrossTag is reused by package b. Within this package it is bound once, so
// nothing is reported here.
type CrossTag struct{}

var lone taggedcell.Cell[int, loneTag]

var first taggedcell.Cell[string, sharedTag] // want `tag type ".*a.sharedTag" is bound to 2 cells`
var second taggedcell.Cell[int, sharedTag]   // want `tag type ".*a.sharedTag" is bound to 2 cells`

// A single spec declaring two cells binds the tag twice all by itself.
var left, right taggedcell.Cell[uint64, pairTag] // want `tag type ".*a.pairTag" is bound to 2 cells`

var owner taggedcell.Cell[[]byte, fieldTag] // want `tag type ".*a.fieldTag" is bound to 2 cells`

type wrapper struct {
	slot taggedcell.Cell[byte, fieldTag] // want `tag type ".*a.fieldTag" is bound to 2 cells`
}

var Exported taggedcell.Cell[float64, CrossTag]
