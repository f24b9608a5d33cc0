package main

import (
	"errors"
	"strconv"
)

// step runs one iteration of the dispatch loop: read the current line, and
// dispatch on its leading keyword.
func (interp *Interpreter) step() {
	interp.steps++
	if interp.maxSteps != 0 && interp.steps > interp.maxSteps {
		interp.halt(errors.New("exceeded maximum step count"))
	}

	toks := interp.Tokens[interp.ip]
	if len(toks) == 0 {
		interp.ip++
		return
	}

	if interp.logfn != nil {
		interp.logf(">", "@%v %v", interp.ip, toks)
	}

	switch toks[0] {
	case "func":
		interp.ip++
	case "funccall":
		interp.doFunccall(toks)
	case "endfunc":
		interp.doEndfunc()
	case "return":
		interp.doReturn(toks)
	case "if":
		interp.doIf(toks)
	case "else":
		interp.doElse()
	case "endif":
		interp.doEndif()
	case "while":
		interp.doWhile(toks)
	case "endwhile":
		interp.doEndwhile()
	case "assign":
		interp.doAssign(toks)
	default:
		interp.fail(SyntaxError, "unknown statement "+toks[0], interp.ip)
	}
}

var builtinFuncs = map[string]bool{"print": true, "input": true, "strtoint": true}

func (interp *Interpreter) doFunccall(toks []string) {
	if len(toks) < 2 {
		interp.fail(SyntaxError, "funccall requires a function name", interp.ip)
	}
	name := toks[1]

	if builtinFuncs[name] {
		switch name {
		case "print":
			interp.builtinPrint(toks)
		case "input":
			interp.builtinInput(toks)
		case "strtoint":
			interp.builtinStrtoint(toks)
		}
		interp.ip++
		return
	}

	funcLine, ok := interp.Functions[name]
	if !ok {
		interp.fail(NameError, "function "+name+" is not defined", interp.ip)
	}

	top := interp.Stack.top()
	if top == nil || interp.Indent[interp.ip] <= top.Indent {
		interp.fail(SyntaxError, "misaligned funccall", interp.ip)
	}

	interp.Stack.push(Frame{
		Kind:     FrameFunccall,
		Indent:   interp.Indent[funcLine],
		FuncName: name,
		ReturnIP: interp.ip + 1,
	})
	interp.ip = funcLine
}

func (interp *Interpreter) doEndfunc() {
	top := interp.Stack.top()
	if top == nil || top.Kind != FrameFunccall || top.Indent != interp.Indent[interp.ip] {
		interp.fail(SyntaxError, "mismatched endfunc", interp.ip)
	}
	if top.FuncName == "main" {
		interp.terminated = true
		return
	}
	returnIP := top.ReturnIP
	interp.Stack.pop()
	interp.ip = returnIP
}

func (interp *Interpreter) doReturn(toks []string) {
	if len(toks) > 1 {
		interp.Variables["result"] = interp.evaluate(toks[1:], interp.ip)
	}

	for {
		top := interp.Stack.top()
		if top == nil {
			interp.fail(SyntaxError, "return outside of any function", interp.ip)
		}
		if top.Kind == FrameFunccall {
			break
		}
		interp.Stack.pop()
	}

	top := interp.Stack.top()
	interp.ip = interp.mustScanForward(interp.ip+1, top.Indent, "endfunc", "endfunc")
}

func (interp *Interpreter) doIf(toks []string) {
	if len(toks) < 2 {
		interp.fail(SyntaxError, "if requires a condition", interp.ip)
	}
	cond := interp.evaluate(toks[1:], interp.ip)
	if cond.Kind != BoolValue {
		interp.fail(TypeError, "if condition must be a bool", interp.ip)
	}

	indent := interp.Indent[interp.ip]
	interp.Stack.push(Frame{Kind: FrameIf, Indent: indent, Taken: cond.B})

	if cond.B {
		interp.ip++
		return
	}
	interp.ip = interp.mustScanForward(interp.ip+1, indent, "else or endif", "else", "endif")
}

func (interp *Interpreter) doElse() {
	top := interp.Stack.top()
	if top == nil || top.Kind != FrameIf || top.Indent != interp.Indent[interp.ip] {
		interp.fail(SyntaxError, "mismatched else", interp.ip)
	}
	if top.Taken {
		interp.ip = interp.mustScanForward(interp.ip+1, top.Indent, "endif", "endif")
		return
	}
	interp.ip++
}

func (interp *Interpreter) doEndif() {
	top := interp.Stack.top()
	if top == nil || top.Kind != FrameIf || top.Indent != interp.Indent[interp.ip] {
		interp.fail(SyntaxError, "mismatched endif", interp.ip)
	}
	interp.Stack.pop()
	interp.ip++
}

func (interp *Interpreter) doWhile(toks []string) {
	if len(toks) < 2 {
		interp.fail(SyntaxError, "while requires a condition", interp.ip)
	}
	indent := interp.Indent[interp.ip]

	top := interp.Stack.top()
	if top == nil || top.Kind != FrameWhile || top.WhileIP != interp.ip {
		endwhile := interp.mustScanForward(interp.ip+1, indent, "endwhile", "endwhile")
		interp.Stack.push(Frame{Kind: FrameWhile, Indent: indent, WhileIP: interp.ip, AfterIP: endwhile + 1})
		top = interp.Stack.top()
	}

	cond := interp.evaluate(toks[1:], interp.ip)
	if cond.Kind != BoolValue {
		interp.fail(TypeError, "while condition must be a bool", interp.ip)
	}
	if cond.B {
		interp.ip++
		return
	}
	interp.ip = top.AfterIP
	interp.Stack.pop()
}

func (interp *Interpreter) doEndwhile() {
	top := interp.Stack.top()
	if top == nil || top.Kind != FrameWhile || top.Indent != interp.Indent[interp.ip] {
		interp.fail(SyntaxError, "mismatched endwhile", interp.ip)
	}
	interp.ip = top.WhileIP
}

func (interp *Interpreter) doAssign(toks []string) {
	if len(toks) < 3 {
		interp.fail(SyntaxError, "assign requires a variable and a value", interp.ip)
	}
	name := toks[1]
	if !isIdentifier(name) {
		interp.fail(SyntaxError, "invalid variable name "+name, interp.ip)
	}

	var val Value
	if len(toks) == 3 {
		val = interp.resolve(toks[2], interp.ip)
	} else {
		val = interp.evaluate(toks[2:], interp.ip)
	}
	interp.Variables[name] = val
	interp.ip++
}

func (interp *Interpreter) builtinPrint(toks []string) {
	if len(toks) < 3 {
		interp.fail(SyntaxError, "print requires at least one argument", interp.ip)
	}
	interp.writeLine(interp.stringifyArgs(toks[2:]))
}

func (interp *Interpreter) builtinInput(toks []string) {
	if len(toks) < 3 {
		interp.fail(SyntaxError, "input requires a prompt", interp.ip)
	}
	interp.writeLine(interp.stringifyArgs(toks[2:]))
	interp.Variables["result"] = StrVal(interp.readLine())
}

func (interp *Interpreter) builtinStrtoint(toks []string) {
	if len(toks) != 3 {
		interp.fail(SyntaxError, "strtoint requires exactly one argument", interp.ip)
	}
	val := interp.resolve(toks[2], interp.ip)
	if val.Kind != StrValue || !looksLikeInt(val.S) {
		interp.fail(TypeError, "strtoint requires a numeric string", interp.ip)
	}
	n, err := strconv.ParseInt(val.S, 10, 64)
	if err != nil {
		interp.fail(SyntaxError, "integer literal out of range: "+val.S, interp.ip)
	}
	interp.Variables["result"] = IntVal(n)
}

func (interp *Interpreter) stringifyArgs(toks []string) string {
	var sb []byte
	for _, tok := range toks {
		sb = append(sb, interp.resolve(tok, interp.ip).String()...)
	}
	return string(sb)
}

// scanForward looks from line `from` for the first line at `indent` whose
// leading keyword is one of `keywords`, returning -1 if none is found.
func (interp *Interpreter) scanForward(from, indent int, keywords ...string) int {
	for i := from; i < len(interp.Tokens); i++ {
		toks := interp.Tokens[i]
		if len(toks) == 0 || interp.Indent[i] != indent {
			continue
		}
		for _, kw := range keywords {
			if toks[0] == kw {
				return i
			}
		}
	}
	return -1
}

func (interp *Interpreter) mustScanForward(from, indent int, label string, keywords ...string) int {
	i := interp.scanForward(from, indent, keywords...)
	if i < 0 {
		interp.fail(SyntaxError, "missing "+label, interp.ip)
	}
	return i
}
