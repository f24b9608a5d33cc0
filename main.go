// Command brewin runs the core Brewin interpreter: a line-oriented,
// indentation-delimited imperative language with function call/return
// through a single implicit result variable, prefix-form expressions, and
// if/while control flow.
package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/brewin-lang/interpreter/internal/logio"
)

func main() {
	var (
		trace    bool
		dump     bool
		timeout  time.Duration
		maxSteps uint
	)
	flag.BoolVar(&trace, "trace", false, "log each dispatched line to stderr")
	flag.BoolVar(&dump, "dump", false, "print interpreter state to stderr after halting")
	flag.DurationVar(&timeout, "timeout", 0, "abort the run after this long")
	flag.UintVar(&maxSteps, "max-steps", 0, "abort after this many dispatch steps (0 = unlimited)")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	if flag.NArg() != 1 {
		log.Errorf("usage: brewin [flags] <program-file>")
		return
	}

	lines, err := loadLines(flag.Arg(0))
	if err != nil {
		log.Errorf("reading program: %v", err)
		return
	}

	opts := []Option{
		WithStdin(os.Stdin),
		WithOutput(os.Stdout),
		WithMaxSteps(uint64(maxSteps)),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	interp := New(opts...)

	if dump {
		defer interpDumper{interp: interp, out: os.Stderr}.dump()
	}

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.ErrorIf(interp.Run(ctx, lines))
}

// loadLines is the host-shell collaborator: it reads a program file and
// splits it into the already-split line sequence run() expects, terminators
// stripped. Plain bufio.Scanner is used rather than any third-party
// tokenizer because this is mechanical line splitting with no Brewin-specific
// grammar in it (see DESIGN.md).
func loadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
