package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Interpreter_evaluate_arithmetic(t *testing.T) {
	interp := New()
	interp.Variables["n"] = IntVal(4)

	assert.Equal(t, IntVal(9), interp.evaluate([]string{"+", "4", "n"}, 0))
	assert.Equal(t, IntVal(-1), interp.evaluate([]string{"-", "3", "4"}, 0))
	assert.Equal(t, IntVal(20), interp.evaluate([]string{"*", "n", "5"}, 0))
}

func Test_Interpreter_evaluate_nestedPrefix(t *testing.T) {
	interp := New()
	// + * 2 3 1  =>  (2*3) + 1 = 7
	got := interp.evaluate([]string{"+", "*", "2", "3", "1"}, 0)
	assert.Equal(t, IntVal(7), got)
}

func Test_Interpreter_evaluate_comparisons(t *testing.T) {
	interp := New()
	assert.Equal(t, BoolVal(true), interp.evaluate([]string{"<", "1", "2"}, 0))
	assert.Equal(t, BoolVal(false), interp.evaluate([]string{">=", "1", "2"}, 0))
	assert.Equal(t, BoolVal(true), interp.evaluate([]string{"==", `"hi"`, `"hi"`}, 0))
	assert.Equal(t, BoolVal(true), interp.evaluate([]string{"&", "True", "True"}, 0))
	assert.Equal(t, BoolVal(true), interp.evaluate([]string{"|", "False", "True"}, 0))
}

func Test_floorDiv_and_floorMod(t *testing.T) {
	assert.Equal(t, int64(2), floorDiv(7, 3))
	assert.Equal(t, int64(1), floorMod(7, 3))
	assert.Equal(t, int64(-3), floorDiv(-7, 3))
	assert.Equal(t, int64(2), floorMod(-7, 3))
	assert.Equal(t, int64(-3), floorDiv(7, -3))
	assert.Equal(t, int64(-2), floorMod(7, -3))
}

func Test_Interpreter_compute_typeMismatchHalts(t *testing.T) {
	interp := New()
	var caught interface{}
	func() {
		defer func() { caught = recover() }()
		interp.compute("+", IntVal(1), StrVal("a"), 7)
	}()
	he, ok := caught.(haltError)
	if assert.True(t, ok) {
		berr, ok := he.error.(*brewinError)
		if assert.True(t, ok) {
			assert.Equal(t, TypeError, berr.Kind)
			assert.Equal(t, 7, berr.Line)
		}
	}
}

func Test_Interpreter_evaluate_malformedSyntaxHalts(t *testing.T) {
	interp := New()
	var caught interface{}
	func() {
		defer func() { caught = recover() }()
		interp.evaluate([]string{"+", "1"}, 2)
	}()
	he, ok := caught.(haltError)
	if assert.True(t, ok) {
		berr, ok := he.error.(*brewinError)
		if assert.True(t, ok) {
			assert.Equal(t, SyntaxError, berr.Kind)
		}
	}
}
