package main

// prepass walks every line once, recording indentation and tokens, and
// registering every function entry point. Exactly one "main" function must
// exist; its absence is a fatal error raised before any line is dispatched.
func (interp *Interpreter) prepass(lines []string) {
	interp.Indent = make([]int, len(lines))
	interp.Tokens = make([][]string, len(lines))
	interp.Functions = make(map[string]int)

	for i, line := range lines {
		interp.Indent[i] = countIndent(line)
		toks := tokenizeLine(line)
		interp.Tokens[i] = toks

		if len(toks) == 0 || toks[0] != "func" {
			continue
		}
		if len(toks) != 2 {
			interp.fail(SyntaxError, "func requires exactly one name", i)
		}
		name := toks[1]
		if !isIdentifier(name) {
			interp.fail(SyntaxError, "invalid function name "+name, i)
		}
		interp.Functions[name] = i
	}

	if _, ok := interp.Functions["main"]; !ok {
		interp.fail(NameError, "function main is not defined", -1)
	}
}
