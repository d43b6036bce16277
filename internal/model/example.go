// Package model defines the data structures for documentation-example testing.
package model

import (
	"go/ast"
	"go/token"
)

// Path represents a file system path.
type Path string

// FlagSet is a bitmask of execution-modifier flags for one example.
type FlagSet uint

const (
	// FlagEllipsis lets an "..." marker in expected output match any substring.
	FlagEllipsis FlagSet = 1 << iota
	// FlagNormalizeWhitespace treats all whitespace runs as equal when comparing output.
	FlagNormalizeWhitespace
	// FlagIgnoreFaultDetail compares only the text before the first colon of a fault message.
	FlagIgnoreFaultDetail
	// FlagSkip excludes the example from execution and reporting entirely.
	FlagSkip
)

// Has reports whether all bits of flag are set.
func (f FlagSet) Has(flag FlagSet) bool {
	return f&flag == flag
}

// FlagOverride enables or disables one flag for a single example.
type FlagOverride struct {
	Flag   FlagSet
	Enable bool
}

// Apply returns f with the given per-example overrides folded in. The
// receiver is the baseline and is never mutated, so the effective flag set
// can be recomputed from scratch before every example.
func (f FlagSet) Apply(overrides []FlagOverride) FlagSet {
	out := f
	for _, o := range overrides {
		if o.Enable {
			out |= o.Flag
		} else {
			out &^= o.Flag
		}
	}

	return out
}

// flagNames maps directive names to flags. Both "+name" and "-name" forms
// are accepted in directives and in the CLI baseline option list.
var flagNames = map[string]FlagSet{
	"ellipsis":             FlagEllipsis,
	"normalize-whitespace": FlagNormalizeWhitespace,
	"ignore-fault-detail":  FlagIgnoreFaultDetail,
	"skip":                 FlagSkip,
}

// ParseFlag resolves a directive name to its flag bit.
func ParseFlag(name string) (FlagSet, bool) {
	f, ok := flagNames[name]
	return f, ok
}

// Example is one executable snippet embedded in a documentation comment.
type Example struct {
	// Source is the snippet code with prompt markers stripped.
	Source string
	// Want is the expected standard output, empty when nothing is expected.
	Want string
	// WantFault is the expected fault text; non-empty means the snippet is
	// expected to fail rather than print Want.
	WantFault string
	// LineOffset is the line of the snippet's prompt relative to the group's
	// starting line.
	LineOffset int
	// Overrides are per-example flag adjustments parsed from directives.
	Overrides []FlagOverride
}

// ExpectsFault reports whether the example declares an expected fault.
func (e Example) ExpectsFault() bool {
	return e.WantFault != ""
}

// ExampleGroup is all examples embedded in one documentation comment or one
// raw text file, sharing a source location. Immutable once extracted.
type ExampleGroup struct {
	Name      string
	Filename  Path
	StartLine int // 1-based
	Examples  []Example
}

// Module is a loaded-source handle produced by the loader. Index maps a
// member path ("Func", "Type", "Type.Method") to positions in Groups, built
// once at extraction time so member lookups never probe dynamically.
type Module struct {
	Name    string
	Path    Path
	File    *ast.File
	FileSet *token.FileSet
	Groups  []ExampleGroup
	Index   map[string][]int
}
