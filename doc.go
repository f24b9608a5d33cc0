/*
Package main implements the core of Brewin, a line-oriented interpreter for
a small imperative language.

A program is a sequence of already-split source lines. Leading ASCII spaces
measure indentation, which delimits nested blocks (function bodies,
conditionals, loops) in place of braces. The interpreter tokenises each
line, resolves a pre-pass over the whole program to find every function
entry point, and then walks an instruction pointer over the lines directly
-- there is no intermediate compiled form.

Expressions are written prefix-first: an operator token precedes its two
operands. Evaluation is one left-to-right scan that applies the most recent
operator as soon as two operands are available, so a nested expression may
stand as an operator's first operand ("+ * 2 3 1" is 7), but a nested
expression in the second position is not grouped as its own operand
("+ 1 * 2 3" evaluates as (1*2)+3, which is 5). Values are tagged as
Int, Str or Bool, with strict operator typing and no coercions between
kinds.

Functions share one process-wide variable namespace; there is no lexical
scoping and no parameter passing. A function "returns" by assigning to the
well-known variable result before control reaches its endfunc, the same
variable get_input and strtoint write into.
*/
package main
