package main

import (
	"fmt"
	"io"

	"github.com/brewin-lang/interpreter/internal/fileinput"
	"github.com/brewin-lang/interpreter/internal/flushio"
	"github.com/brewin-lang/interpreter/internal/runeio"
)

// logging gives the interpreter an optional leveled trace sink, in the
// teacher's style: nil logfn means tracing is off and logf is a no-op.
type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}

// Core holds everything the interpreter needs to talk to the outside world:
// a blocking line reader for get_input, a flushable output sink for print,
// and an optional trace logger. It is deliberately ignorant of language
// semantics; Interpreter embeds it.
type Core struct {
	logging
	in      fileinput.Input
	out     flushio.WriteFlusher
	closers []io.Closer
}

// Close releases any closers registered by options, most-recently-added
// first.
func (core *Core) Close() (err error) {
	for i := len(core.closers) - 1; i >= 0; i-- {
		if cerr := core.closers[i].Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// halt flushes output and logs the halting error on a best-effort basis,
// then panics with it wrapped in haltError. Run recovers this panic and
// turns it back into a normal error return; a nil err means clean
// termination -- the interpreter returned from main.
func (core *Core) halt(err error) {
	func() {
		defer func() { recover() }()
		if core.out != nil {
			if ferr := core.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()
	func() {
		defer func() { recover() }()
		core.logf("#", "halt error: %v", err)
	}()
	panic(haltError{err})
}

// writeLine emits one line to the output sink, escaping any C1 control runes
// the way runeio.WriteANSIRune does. Used by the print/input builtins.
func (core *Core) writeLine(s string) {
	if _, err := runeio.WriteANSIString(core.out, s); err != nil {
		core.halt(err)
	}
	if _, err := runeio.WriteANSIRune(core.out, '\n'); err != nil {
		core.halt(err)
	}
}

// readLine flushes any pending output (so a prompt is visible before
// blocking) and reads one line from standard input. EOF before any input
// arrives halts the run with that error, since a program that reaches
// get_input needs a line to read and the core has no opinion about what
// should happen when the host gives it none.
func (core *Core) readLine() string {
	if err := core.out.Flush(); err != nil {
		core.halt(err)
	}
	line, err := core.in.ReadLine()
	if err != nil && err != io.EOF {
		core.halt(err)
	} else if err == io.EOF && line == "" {
		core.halt(err)
	}
	return line
}
