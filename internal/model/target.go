package model

// TargetKind distinguishes the four request shapes a CLI argument can take.
type TargetKind int

const (
	// TargetFolder runs every matching file under a directory tree.
	TargetFolder TargetKind = iota
	// TargetFile runs all example groups of a single file.
	TargetFile
	// TargetMember runs the groups of one named type or function.
	TargetMember
	// TargetMethod runs the groups of one method (or top-level function when
	// Member is empty).
	TargetMethod
)

// Target is one parsed command-line test request.
type Target struct {
	Kind    TargetKind
	Path    Path
	Pattern string // folder filename filter, empty means match everything
	Member  string // type name for TargetMember/TargetMethod
	Method  string // method or function name for TargetMethod
}
