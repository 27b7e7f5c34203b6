// Copyright 2025-2026, Synclabs, Inc.
// For license information, see https://github.com/synclabs/taggedcell/blob/master/LICENSE

// Package tagcheck statically enforces the one precondition a taggedcell.Cell
// cannot verify at runtime: every declared cell binds its own tag type. Two
// cells sharing a tag accept each other's witnesses, so a witness from the
// initialized cell would unlock the uninitialized one.
package tagcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/tools/go/analysis"
)

const (
	cellPkgPath  = "github.com/synclabs/taggedcell"
	cellTypeName = "Cell"
)

// Analyzer reports every tag type bound to more than one Cell declaration.
// Cell declarations are counted at package-level and local var declarations
// and at struct fields. Each analyzed package exports its own bindings as a
// package fact, so a tag reused from an imported package is reported at the
// importing declaration.
var Analyzer = &analysis.Analyzer{
	Name:       "tagcheck",
	Doc:        "check that every taggedcell.Cell declaration binds its own tag type",
	Run:        run,
	ResultType: reflect.TypeOf(Result{}),
	FactTypes:  []analysis.Fact{new(tagBindings)},
}

// tagBindings records how many cell declarations of one package bind each tag
// type. Only the declaring package's own sites are exported, which keeps the
// counts duplicate-free when facts from a diamond of dependencies are merged.
type tagBindings struct {
	Sites map[string][]string // tag type -> positions of the declarations binding it
}

// AFact is the required marker for use as an analysis fact.
func (*tagBindings) AFact() {}

func (b *tagBindings) String() string {
	tags := make([]string, 0, len(b.Sites))
	for tag := range b.Sites {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, fmt.Sprintf("%s=%d", tag, len(b.Sites[tag])))
	}
	return "cells per tag: " + strings.Join(parts, " ")
}

// Error describing a tag type shared between cell declarations.
type tagError struct {
	Pos     token.Pos
	Message string
}

type Result struct {
	Errors []tagError
}

func run(pass *analysis.Pass) (interface{}, error) {
	local := collectCellDecls(pass)

	// Tally the tags bound by every dependency before adding this package's.
	total := make(map[string]int)
	for _, pf := range pass.AllPackageFacts() {
		if imported, ok := pf.Fact.(*tagBindings); ok {
			for tag, sites := range imported.Sites {
				total[tag] += len(sites)
			}
		}
	}

	exported := tagBindings{Sites: make(map[string][]string)}
	for _, decl := range local {
		site := pass.Fset.Position(decl.pos).String()
		for i := 0; i < decl.cells; i++ {
			exported.Sites[decl.tag] = append(exported.Sites[decl.tag], site)
		}
		total[decl.tag] += decl.cells
	}
	if len(exported.Sites) > 0 {
		pass.ExportPackageFact(&exported)
	}

	var ret Result
	for _, decl := range local {
		if total[decl.tag] > 1 {
			ret.Errors = append(ret.Errors, tagError{
				Pos: decl.pos,
				Message: fmt.Sprintf("tag type %q is bound to %d cells; each declared cell needs its own tag type",
					decl.tag, total[decl.tag]),
			})
		}
	}
	for _, err := range ret.Errors {
		pass.Report(analysis.Diagnostic{
			Pos:      err.Pos,
			Message:  err.Message,
			Category: "tagcheck",
		})
	}
	return ret, nil
}

// One syntactic declaration of cell storage. A multi-name var spec or struct
// field declares several cells against the same tag in one spec.
type cellDecl struct {
	tag   string
	cells int
	pos   token.Pos
}

func collectCellDecls(pass *analysis.Pass) []cellDecl {
	var decls []cellDecl
	for _, f := range pass.Files {
		ast.Inspect(f, func(node ast.Node) bool {
			switch n := node.(type) {
			case *ast.ValueSpec:
				if n.Type == nil {
					return true
				}
				if tag, ok := cellTagArg(pass, n.Type); ok {
					decls = append(decls, cellDecl{tag: tag, cells: len(n.Names), pos: n.Type.Pos()})
				}
			case *ast.StructType:
				// Fields are inspected here rather than via ast.Field so that
				// function parameters, which pass cells around instead of
				// declaring storage, are not counted.
				for _, field := range n.Fields.List {
					tag, ok := cellTagArg(pass, field.Type)
					if !ok {
						continue
					}
					cells := len(field.Names)
					if cells == 0 { // embedded field
						cells = 1
					}
					decls = append(decls, cellDecl{tag: tag, cells: cells, pos: field.Type.Pos()})
				}
			}
			return true
		})
	}
	return decls
}

// cellTagArg reports whether typeExpr denotes an instantiation of
// taggedcell.Cell and, if so, returns the fully qualified name of its tag
// type argument.
func cellTagArg(pass *analysis.Pass, typeExpr ast.Expr) (string, bool) {
	tv, ok := pass.TypesInfo.Types[typeExpr]
	if !ok || tv.Type == nil {
		return "", false
	}
	named, ok := tv.Type.(*types.Named)
	if !ok {
		return "", false
	}
	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil || obj.Pkg().Path() != cellPkgPath || obj.Name() != cellTypeName {
		return "", false
	}
	args := named.TypeArgs()
	if args == nil || args.Len() != 2 {
		return "", false
	}
	return args.At(1).String(), true
}
