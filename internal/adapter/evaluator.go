package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"go/parser"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// Evaluator creates snippet-execution sessions. One session backs one
// example group, so later examples see bindings made by earlier ones.
type Evaluator interface {
	NewSession() (Session, error)
}

// Session runs snippets sequentially in a shared evaluation context.
type Session interface {
	// Eval executes one snippet and returns its captured standard output.
	// A non-nil error is the snippet's fault; it never tears down the
	// session and execution may continue with the next snippet.
	Eval(source string) (string, error)
}

// YaegiEvaluator backs sessions with an embedded Go interpreter.
type YaegiEvaluator struct{}

// NewYaegiEvaluator constructs a YaegiEvaluator.
func NewYaegiEvaluator() *YaegiEvaluator {
	return &YaegiEvaluator{}
}

// NewSession creates an interpreter with the standard library available and
// both output streams captured.
func (e *YaegiEvaluator) NewSession() (Session, error) {
	var out bytes.Buffer

	i := interp.New(interp.Options{Stdout: &out, Stderr: &out})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("load interpreter stdlib: %w", err)
	}

	return &yaegiSession{interp: i, out: &out}, nil
}

type yaegiSession struct {
	interp *interp.Interpreter
	out    *bytes.Buffer
}

// Eval runs the snippet, capturing output and containing any fault. Bare
// expressions that printed nothing themselves have their value echoed,
// matching interactive-interpreter behavior.
func (s *yaegiSession) Eval(source string) (output string, err error) {
	s.out.Reset()

	defer func() {
		if r := recover(); r != nil {
			output = s.out.String()
			err = fmt.Errorf("%v", r)
		}
	}()

	v, evalErr := s.interp.Eval(source)
	output = s.out.String()

	if evalErr != nil {
		var p interp.Panic
		if errors.As(evalErr, &p) {
			return output, fmt.Errorf("%v", p.Value)
		}

		return output, evalErr
	}

	if output == "" && v.IsValid() && isExpression(source) {
		fmt.Fprintf(s.out, "%v\n", v)
		output = s.out.String()
	}

	return output, nil
}

func isExpression(source string) bool {
	_, err := parser.ParseExpr(source)
	return err == nil
}
