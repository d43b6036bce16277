package domain

import (
	"fmt"
	"log/slog"

	"github.com/docrun-dev/docrun/internal/adapter"
	m "github.com/docrun-dev/docrun/internal/model"
)

// Engine executes example groups. Extraction is handled by the package-level
// ExtractModule/ExtractText functions; the engine owns execution and outcome
// classification only.
type Engine interface {
	// RunGroup executes one group against a fresh evaluation session,
	// reporting every non-skipped example to the sink exactly once.
	RunGroup(group m.ExampleGroup, baseline m.FlagSet, sink EventSink) error
}

type engine struct {
	evaluator adapter.Evaluator
}

// NewEngine constructs an Engine backed by the given evaluator.
func NewEngine(evaluator adapter.Evaluator) Engine {
	return &engine{evaluator: evaluator}
}

func (e *engine) RunGroup(group m.ExampleGroup, baseline m.FlagSet, sink EventSink) error {
	session, err := e.evaluator.NewSession()
	if err != nil {
		return fmt.Errorf("start evaluation session for %s: %w", group.Name, err)
	}

	sink.SuiteStarted(group)

	for _, ex := range group.Examples {
		// Flags are example-local: recomputed from the baseline before
		// every example, so one example's overrides never leak into the next.
		flags := baseline.Apply(ex.Overrides)
		if flags.Has(m.FlagSkip) {
			slog.Debug("skipping example", "group", group.Name, "line", group.StartLine+ex.LineOffset)
			continue
		}

		sink.ExampleStarted(group, ex)
		sink.ExampleFinished(group, ex, runExample(session, group, ex, flags))
	}

	sink.SuiteFinished(group)

	return nil
}

// runExample executes one snippet and classifies the result. A fault is
// always contained here: it becomes an Error outcome and never propagates.
func runExample(session adapter.Session, group m.ExampleGroup, ex m.Example, flags m.FlagSet) m.Outcome {
	got, fault := session.Eval(ex.Source)

	if fault == nil {
		if !ex.ExpectsFault() && checkOutput(ex.Want, got, flags) {
			return m.Outcome{Kind: m.Success}
		}

		want := ex.Want
		if ex.ExpectsFault() {
			want = faultPrefix + ex.WantFault
		}

		return m.Outcome{
			Kind:   m.Failure,
			Actual: got,
			Diff:   failureHeader(group, ex) + renderDiff(want, got),
		}
	}

	faultText := fault.Error()

	if ex.ExpectsFault() && checkFault(ex.WantFault, faultText, flags) {
		return m.Outcome{Kind: m.Success}
	}

	return m.Outcome{
		Kind:  m.Error,
		Fault: failureHeader(group, ex) + "Fault raised:\n" + indent(faultText),
	}
}
