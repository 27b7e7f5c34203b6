// want package:"cells per tag: .*a.CrossTag=1"

package b

import (
	"github.com/synclabs/taggedcell"

	"github.com/synclabs/taggedcell/linters/testdata/src/tagcheck/a"
)

// Clone reuses a tag that package a already bound: a witness minted by
// a.Exported would unlock Clone before Clone is ever initialized.
var Clone taggedcell.Cell[float64, a.CrossTag] // want `tag type ".*a.CrossTag" is bound to 2 cells`
