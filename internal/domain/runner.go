package domain

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docrun-dev/docrun/internal/adapter"
	m "github.com/docrun-dev/docrun/internal/model"
)

// EventSink receives run events. Calls arrive in strict logical order: one
// RunStarted, then per group one SuiteStarted, per example one
// ExampleStarted followed by exactly one ExampleFinished, then one
// SuiteFinished.
type EventSink interface {
	RunStarted(count int)
	SuiteStarted(group m.ExampleGroup)
	ExampleStarted(group m.ExampleGroup, ex m.Example)
	ExampleFinished(group m.ExampleGroup, ex m.Example, outcome m.Outcome)
	SuiteFinished(group m.ExampleGroup)
}

// multiSink fans events out to several sinks in order.
type multiSink []EventSink

// NewMultiSink combines sinks; events reach them in argument order.
func NewMultiSink(sinks ...EventSink) EventSink {
	return multiSink(sinks)
}

func (s multiSink) RunStarted(count int) {
	for _, sink := range s {
		sink.RunStarted(count)
	}
}

func (s multiSink) SuiteStarted(group m.ExampleGroup) {
	for _, sink := range s {
		sink.SuiteStarted(group)
	}
}

func (s multiSink) ExampleStarted(group m.ExampleGroup, ex m.Example) {
	for _, sink := range s {
		sink.ExampleStarted(group, ex)
	}
}

func (s multiSink) ExampleFinished(group m.ExampleGroup, ex m.Example, outcome m.Outcome) {
	for _, sink := range s {
		sink.ExampleFinished(group, ex, outcome)
	}
}

func (s multiSink) SuiteFinished(group m.ExampleGroup) {
	for _, sink := range s {
		sink.SuiteFinished(group)
	}
}

// Driver is the top-level orchestration: it resolves CLI targets into
// example groups and runs them sequentially through the engine.
type Driver struct {
	loader   adapter.SourceLoader
	engine   Engine
	baseline m.FlagSet
}

// NewDriver constructs a Driver. The loader's registry lifetime defines the
// run's module-name uniqueness scope, so callers pass a fresh loader per run.
func NewDriver(loader adapter.SourceLoader, engine Engine, baseline m.FlagSet) *Driver {
	return &Driver{loader: loader, engine: engine, baseline: baseline}
}

// ParseTarget interprets one positional argument as one of the four request
// shapes: folder (trailing separator, optional ";pattern" filter), single
// file, "file::Member", and "file::Member::method" / "file::::function".
func ParseTarget(arg string) (m.Target, error) {
	arg = strings.TrimSpace(arg)

	parts := strings.Split(arg, "::")
	switch len(parts) {
	case 1:
		return parsePathTarget(parts[0])

	case 2:
		if parts[1] == "" {
			return m.Target{}, fmt.Errorf("target %q names no member", arg)
		}

		return m.Target{Kind: m.TargetMember, Path: m.Path(parts[0]), Member: parts[1]}, nil

	case 3:
		if parts[2] == "" {
			return m.Target{}, fmt.Errorf("target %q names no method", arg)
		}

		return m.Target{Kind: m.TargetMethod, Path: m.Path(parts[0]), Member: parts[1], Method: parts[2]}, nil
	}

	return m.Target{}, fmt.Errorf("invalid target %q", arg)
}

func parsePathTarget(arg string) (m.Target, error) {
	path, pattern, hasPattern := strings.Cut(arg, ";")

	if isFolder(path) {
		return m.Target{Kind: m.TargetFolder, Path: m.Path(path), Pattern: pattern}, nil
	}

	if hasPattern {
		return m.Target{}, fmt.Errorf("pattern filter requires a folder target: %q", arg)
	}

	return m.Target{Kind: m.TargetFile, Path: m.Path(path)}, nil
}

func isFolder(path string) bool {
	return strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(os.PathSeparator))
}

// Gather resolves every target into its example groups, in target order.
// Resolution failures (unparseable sources, missing members) abort the run.
func (d *Driver) Gather(targets []m.Target) ([]m.ExampleGroup, error) {
	var groups []m.ExampleGroup

	for _, t := range targets {
		gs, err := d.gatherTarget(t)
		if err != nil {
			return nil, err
		}

		groups = append(groups, gs...)
	}

	return groups, nil
}

func (d *Driver) gatherTarget(t m.Target) ([]m.ExampleGroup, error) {
	switch t.Kind {
	case m.TargetFolder:
		return d.gatherFolder(t)
	case m.TargetFile:
		return d.gatherFile(t)
	case m.TargetMember, m.TargetMethod:
		return d.gatherMember(t)
	}

	return nil, fmt.Errorf("unsupported target kind %d", t.Kind)
}

func (d *Driver) gatherFolder(t m.Target) ([]m.ExampleGroup, error) {
	mods, raws, err := d.loader.ResolveFolder(t.Path, t.Pattern)
	if err != nil {
		return nil, err
	}

	var groups []m.ExampleGroup

	for _, mod := range mods {
		ExtractModule(mod)
		groups = append(groups, mod.Groups...)
	}

	for _, raw := range raws {
		if g, ok := ExtractText(filepath.Base(string(raw.Path)), raw.Path, raw.Text); ok {
			groups = append(groups, g)
		}
	}

	slog.Debug("resolved folder", "path", t.Path, "pattern", t.Pattern, "groups", len(groups))

	return groups, nil
}

func (d *Driver) gatherFile(t m.Target) ([]m.ExampleGroup, error) {
	if filepath.Ext(string(t.Path)) != ".go" {
		raw, err := d.loader.LoadText(t.Path)
		if err != nil {
			return nil, err
		}

		g, ok := ExtractText(filepath.Base(string(raw.Path)), raw.Path, raw.Text)
		if !ok {
			return nil, nil
		}

		return []m.ExampleGroup{g}, nil
	}

	mod, err := d.loader.Load(t.Path)
	if err != nil {
		return nil, err
	}

	ExtractModule(mod)

	return mod.Groups, nil
}

func (d *Driver) gatherMember(t m.Target) ([]m.ExampleGroup, error) {
	mod, err := d.loader.Load(t.Path)
	if err != nil {
		return nil, err
	}

	ExtractModule(mod)

	switch {
	case t.Kind == m.TargetMember:
		return memberGroups(mod, t.Member, &m.MemberNotFoundError{Module: mod.Name, Member: t.Member})

	case t.Member == "":
		// "file::::function" shape.
		return memberGroups(mod, t.Method, &m.MemberNotFoundError{Module: mod.Name, Method: t.Method})

	default:
		if !hasMember(mod, t.Member) {
			return nil, &m.MemberNotFoundError{Module: mod.Name, Member: t.Member}
		}

		key := t.Member + "." + t.Method
		if _, ok := mod.Index[key]; !ok {
			return nil, &m.MemberNotFoundError{Module: mod.Name, Member: t.Member, Method: t.Method}
		}

		return groupsAt(mod, mod.Index[key]), nil
	}
}

// memberGroups collects the member's own groups plus those of any nested
// members ("Type" pulls in every "Type.Method"). notFound is returned when
// the module declares no such member at all.
func memberGroups(mod *m.Module, member string, notFound error) ([]m.ExampleGroup, error) {
	if !hasMember(mod, member) {
		return nil, notFound
	}

	ids := append([]int(nil), mod.Index[member]...)

	prefix := member + "."
	for key, nested := range mod.Index {
		if strings.HasPrefix(key, prefix) {
			ids = append(ids, nested...)
		}
	}

	sort.Ints(ids)

	return groupsAt(mod, ids), nil
}

func hasMember(mod *m.Module, member string) bool {
	if _, ok := mod.Index[member]; ok {
		return true
	}

	prefix := member + "."
	for key := range mod.Index {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}

	return false
}

func groupsAt(mod *m.Module, ids []int) []m.ExampleGroup {
	groups := make([]m.ExampleGroup, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, mod.Groups[id])
	}

	return groups
}

// Run announces the runnable example count and then executes every group in
// order. Skip-flagged examples are excluded from the count up front, with
// the same baseline-plus-overrides computation the engine applies later.
func (d *Driver) Run(groups []m.ExampleGroup, sink EventSink) error {
	count := 0

	for _, g := range groups {
		for _, ex := range g.Examples {
			if !d.baseline.Apply(ex.Overrides).Has(m.FlagSkip) {
				count++
			}
		}
	}

	sink.RunStarted(count)

	for _, g := range groups {
		if err := d.engine.RunGroup(g, d.baseline, sink); err != nil {
			return err
		}
	}

	return nil
}
