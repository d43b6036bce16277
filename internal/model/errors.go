package model

import "fmt"

// NotSourceError reports a requested file that could not be parsed as Go
// source. It aborts resolution of that target and fails the run.
type NotSourceError struct {
	Path Path
	Err  error
}

func (e *NotSourceError) Error() string {
	return fmt.Sprintf("file %q is not a Go source file", e.Path)
}

func (e *NotSourceError) Unwrap() error {
	return e.Err
}

// MemberNotFoundError reports a requested type, method or function that does
// not exist in the loaded module.
type MemberNotFoundError struct {
	Module string
	Member string // enclosing type, empty for top-level functions
	Method string
}

func (e *MemberNotFoundError) Error() string {
	switch {
	case e.Method == "":
		return fmt.Sprintf("module %q has no member %q", e.Module, e.Member)
	case e.Member == "":
		return fmt.Sprintf("module %q has no function %q", e.Module, e.Method)
	default:
		return fmt.Sprintf("type %q in module %q has no method %q", e.Member, e.Module, e.Method)
	}
}
