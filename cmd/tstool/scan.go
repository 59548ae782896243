// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"codeberg.org/spacetrace/tscatalog/catalog"
)

// extractor holds the shared state and context for AST analysis within a package.
type extractor struct {
	refs        map[catalog.Key][]catalog.Location
	projectRoot string
	fset        *token.FileSet
	info        *types.Info
	i18nPkgs    map[string]struct{}
}

// scanPackages loads the packages matching patterns from dir and returns one
// entry per translatable message. Messages passed to Tr or MsgKey are placed
// in defaultContext. Entries are sorted by context and source, and their
// locations by file and line, relative to the project root.
func scanPackages(dir string, patterns []string, defaultContext string) ([]catalog.Entry, error) {
	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Dir: dir, Tests: false}, patterns...)
	if err != nil {
		return nil, err
	}

	if packages.PrintErrors(pkgs) > 0 {
		return nil, errPackageErrors
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	refs := extractRefs(pkgs, findProjectRoot(absDir), findI18nPkgPaths(pkgs))

	// Tr("x") and TrC(ctx, defaultContext, "x") name the same message.
	merged := make(map[catalog.Key][]catalog.Location, len(refs))

	for k, locs := range refs {
		if k.Context == "" {
			k.Context = defaultContext
		}

		merged[k] = append(merged[k], locs...)
	}

	entries := make([]catalog.Entry, 0, len(merged))

	for k, locs := range merged {
		slices.SortFunc(locs, compareLocations)

		entries = append(entries, catalog.Entry{
			Context:   k.Context,
			Source:    k.Source,
			Locations: slices.Compact(locs),
		})
	}

	slices.SortFunc(entries, func(a, b catalog.Entry) int {
		if c := strings.Compare(a.Context, b.Context); c != 0 {
			return c
		}

		return strings.Compare(a.Source, b.Source)
	})

	return entries, nil
}

func compareLocations(a, b catalog.Location) int {
	if c := strings.Compare(a.File, b.File); c != 0 {
		return c
	}

	return a.Line - b.Line
}

// extractRefs traverses all Go source files in the given packages,
// looking for i18n function calls and message keys to extract.
func extractRefs(pkgs []*packages.Package, projectRoot string, i18nPkgPaths map[string]struct{}) map[catalog.Key][]catalog.Location {
	refs := map[catalog.Key][]catalog.Location{}

	packages.Visit(pkgs, nil, func(p *packages.Package) {
		// Only scan the requested packages, not their dependencies.
		if p.TypesInfo == nil || !slices.Contains(pkgs, p) {
			return
		}

		e := &extractor{
			refs:        refs,
			projectRoot: projectRoot,
			fset:        p.Fset,
			info:        p.TypesInfo,
			i18nPkgs:    i18nPkgPaths,
		}

		for _, f := range p.Syntax {
			ast.Inspect(f, func(n ast.Node) bool {
				switch x := n.(type) {
				case *ast.CallExpr:
					e.handleCallExpr(x)
				case *ast.CompositeLit:
					e.handleCompositeLit(x)
				}

				return true
			})
		}
	})

	return refs
}

// findI18nPkgPaths returns the set of package paths in this build that
// define the i18n package with a MsgKey type whose underlying type is string.
// Dependencies are searched too, so the i18n package does not have to be
// part of the scanned patterns.
func findI18nPkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	packages.Visit(pkgs, nil, func(p *packages.Package) {
		if p.Name != "i18n" || p.Types == nil {
			return
		}

		tn, ok := p.Types.Scope().Lookup("MsgKey").(*types.TypeName)
		if !ok {
			return
		}

		named, ok := tn.Type().(*types.Named)
		if !ok {
			return
		}

		if basic, ok := named.Underlying().(*types.Basic); ok && basic.Kind() == types.String {
			out[p.PkgPath] = struct{}{}
		}
	})

	return out
}

// constString evaluates expr to a constant string if possible using types.Info.
// Handles string literals, const identifiers, and constant expressions like "a" + "b".
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isMsgKey reports whether t is the named type i18n.MsgKey of one of i18nPkgs.
func isMsgKey(t types.Type, i18nPkgs map[string]struct{}) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	if _, ok := i18nPkgs[obj.Pkg().Path()]; !ok {
		return false
	}

	return obj.Name() == "MsgKey"
}

// handleCompositeLit finds implicit conversions to i18n.MsgKey in map, slice,
// array and struct literals.
func (e *extractor) handleCompositeLit(x *ast.CompositeLit) {
	tv, ok := e.info.Types[x]
	if !ok || tv.Type == nil {
		return
	}

	t := tv.Type
	if p, ok := t.Underlying().(*types.Pointer); ok && p.Elem() != nil {
		t = p.Elem()
	}

	switch u := t.Underlying().(type) {
	case *types.Map:
		keyIsMK := isMsgKey(u.Key(), e.i18nPkgs)
		valIsMK := isMsgKey(u.Elem(), e.i18nPkgs)

		for _, elt := range x.Elts {
			kv, ok := elt.(*ast.KeyValueExpr)
			if !ok {
				continue
			}

			if keyIsMK {
				e.addConst(kv.Key, "")
			}

			if valIsMK {
				e.addConst(kv.Value, "")
			}
		}
	case *types.Slice:
		if isMsgKey(u.Elem(), e.i18nPkgs) {
			for _, elt := range x.Elts {
				e.addConst(elt, "")
			}
		}
	case *types.Array:
		if isMsgKey(u.Elem(), e.i18nPkgs) {
			for _, elt := range x.Elts {
				e.addConst(elt, "")
			}
		}
	case *types.Struct:
		fieldTypes := make(map[string]types.Type, u.NumFields())
		for i := range u.NumFields() {
			fieldTypes[u.Field(i).Name()] = u.Field(i).Type()
		}

		for i, elt := range x.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				if id, ok := kv.Key.(*ast.Ident); ok && isMsgKey(fieldTypes[id.Name], e.i18nPkgs) {
					e.addConst(kv.Value, "")
				}

				continue
			}

			if i < u.NumFields() && isMsgKey(u.Field(i).Type(), e.i18nPkgs) {
				e.addConst(elt, "")
			}
		}
	}
}

// handleCallExpr finds messages in Tr and TrC calls, in MsgKey conversions
// and in arguments passed to MsgKey parameters.
func (e *extractor) handleCallExpr(x *ast.CallExpr) {
	// i18n.MsgKey("Hello")
	if tv, ok := e.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 && isMsgKey(tv.Type, e.i18nPkgs) {
			e.addConst(x.Args[0], "")
		}

		return
	}

	if sel, ok := x.Fun.(*ast.SelectorExpr); ok {
		if fn, ok := e.info.Uses[sel.Sel].(*types.Func); ok && fn.Pkg() != nil && fn.Signature().Recv() == nil {
			if _, ok := e.i18nPkgs[fn.Pkg().Path()]; ok {
				switch fn.Name() {
				case "Tr": // Tr(ctx, "source", args...)
					if len(x.Args) >= 2 {
						e.addConst(x.Args[1], "")
					}

					return
				case "TrC": // TrC(ctx, "context", "source", args...)
					if len(x.Args) >= 3 {
						if ctx, ok := constString(e.info, x.Args[1]); ok {
							e.addConst(x.Args[2], ctx)
						}
					}

					return
				}
			}
		}
	}

	sig, ok := e.info.TypeOf(x.Fun).(*types.Signature)
	if !ok {
		return
	}

	params := sig.Params()

	n := params.Len()
	if n == 0 {
		return
	}

	variadic := sig.Variadic()
	last := n - 1

	for i, arg := range x.Args {
		var pt types.Type

		if variadic && i >= last {
			// f(keys...) is covered by the composite literal of keys, if any.
			if x.Ellipsis != token.NoPos {
				continue
			}

			slice, ok := params.At(last).Type().(*types.Slice)
			if !ok {
				return
			}

			pt = slice.Elem()
		} else {
			if i >= n {
				break
			}

			pt = params.At(i).Type()
		}

		if isMsgKey(pt, e.i18nPkgs) {
			e.addConst(arg, "")
		}
	}
}

// addConst records expr if it is a constant string.
func (e *extractor) addConst(expr ast.Expr, ctx string) {
	if msg, ok := constString(e.info, expr); ok {
		e.addRef(expr.Pos(), msg, ctx)
	}
}

// addRef records a reference to a message, normalising the file path relative
// to the computed project root.
func (e *extractor) addRef(pos token.Pos, msg, ctx string) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.projectRoot, file); err == nil {
		file = rel
	}

	k := catalog.Key{Context: ctx, Source: msg}

	e.refs[k] = append(e.refs[k], catalog.Location{File: filepath.ToSlash(file), Line: p.Line})
}

// findProjectRoot attempts to find a stable root directory for source references.
// Preference order:
//  1. git toplevel directory
//  2. nearest parent directory that contains go.mod
//  3. the provided working directory
func findProjectRoot(wd string) string {
	if root := gitTopLevel(wd); root != "" {
		return root
	}

	if root := nearestGoModDir(wd); root != "" {
		return root
	}

	return wd
}

func gitTopLevel(wd string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")

	cmd.Dir = wd

	out, err := cmd.Output()
	if err != nil {
		return ""
	}

	root := strings.TrimSpace(string(out))
	if root == "" {
		return ""
	}

	return filepath.Clean(root)
}

func nearestGoModDir(start string) string {
	dir := filepath.Clean(start)
	for {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}

		dir = parent
	}
}
