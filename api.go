package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/ioutil"

	"github.com/brewin-lang/interpreter/internal/flushio"
	"github.com/brewin-lang/interpreter/internal/panicerr"
)

// Interpreter is the execution engine described by the core specification:
// tokeniser, value model, expression evaluator, pre-pass, control stack and
// dispatch loop, wired up to a Core for I/O.
type Interpreter struct {
	Core

	Variables map[string]Value
	Functions map[string]int
	Indent    []int
	Tokens    [][]string
	Stack     ControlStack

	ip         int
	terminated bool

	maxSteps uint64
	steps    uint64
}

// New builds an Interpreter with the given options applied over sensible
// defaults (discarded output, empty input queue).
func New(opts ...Option) *Interpreter {
	interp := &Interpreter{Variables: make(map[string]Value)}
	defaultOptions.apply(interp)
	Options(opts...).apply(interp)
	return interp
}

// Run tokenises and executes program, a sequence of already-split source
// lines with line terminators already stripped. It returns nil on clean
// termination (return from main), ctx.Err() if the context is done, or the
// *brewinError that halted interpretation.
func (interp *Interpreter) Run(ctx context.Context, program []string) error {
	err := panicerr.Recover("interpreter", func() error {
		return interp.run(ctx, program)
	})
	if err == nil {
		return nil
	}
	var he haltError
	if errors.As(err, &he) {
		return he.error
	}
	return err
}

func (interp *Interpreter) run(ctx context.Context, program []string) error {
	interp.prepass(program)

	interp.ip = interp.Functions["main"] + 1
	interp.Stack.push(Frame{
		Kind:     FrameFunccall,
		Indent:   interp.Indent[interp.Functions["main"]],
		FuncName: "main",
		ReturnIP: -1,
	})

	for !interp.terminated {
		if err := ctx.Err(); err != nil {
			interp.halt(err)
		}
		interp.step()
	}
	interp.halt(nil)
	panic("unreachable")
}

// Option configures an Interpreter at construction time.
type Option interface{ apply(interp *Interpreter) }

var defaultOptions = Options(
	withInput(bytes.NewReader(nil)),
	withOutput(ioutil.Discard),
)

// Options flattens any number of Option values into one, the way the
// teacher's VMOptions does, so callers can build up option lists
// incrementally.
func Options(opts ...Option) Option {
	var res optionList
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noOption:
		case optionList:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noOption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noOption struct{}

func (noOption) apply(*Interpreter) {}

type optionList []Option

func (opts optionList) apply(interp *Interpreter) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(interp)
		}
	}
}

// WithStdin supplies the reader that the get_input builtin blocks on.
func WithStdin(r io.Reader) Option { return withInput(r) }

// WithOutput sets the sink that output (print/input-prompt) writes to.
func WithOutput(w io.Writer) Option { return withOutput(w) }

// WithLogf installs a trace-logging function, invoked once per dispatched
// line and once more when the run halts, when non-nil.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

// WithVariables pre-seeds the global variable store, useful for embedding
// or for tests that want to assert on post-run state without scraping
// stdout.
func WithVariables(vars map[string]Value) Option { return withVariables(vars) }

// WithMaxSteps bounds the number of dispatch iterations a run may take
// before it halts with an internal error; 0 (the default) means unlimited.
// This is a safety valve for embedders (e.g. fuzzing), not a language-level
// recursion limit -- the language itself defines none.
func WithMaxSteps(n uint64) Option { return withMaxSteps(n) }

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type logfOption func(mess string, args ...interface{})
type variablesOption map[string]Value
type maxStepsOption uint64

func withInput(r io.Reader) inputOption          { return inputOption{r} }
func withOutput(w io.Writer) outputOption        { return outputOption{w} }
func withLogfn(f func(string, ...interface{})) logfOption { return logfOption(f) }
func withVariables(vars map[string]Value) variablesOption { return variablesOption(vars) }
func withMaxSteps(n uint64) maxStepsOption        { return maxStepsOption(n) }

func (i inputOption) apply(interp *Interpreter) {
	interp.Core.in.Queue = append(interp.Core.in.Queue, i.Reader)
}

func (o outputOption) apply(interp *Interpreter) {
	if interp.Core.out != nil {
		interp.Core.out.Flush()
	}
	interp.Core.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		interp.Core.closers = append(interp.Core.closers, cl)
	}
}

func (f logfOption) apply(interp *Interpreter) { interp.logfn = f }

func (vars variablesOption) apply(interp *Interpreter) {
	for k, v := range vars {
		interp.Variables[k] = v
	}
}

func (n maxStepsOption) apply(interp *Interpreter) { interp.maxSteps = uint64(n) }
