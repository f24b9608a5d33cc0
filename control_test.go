package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ControlStack_pushTopPop(t *testing.T) {
	var cs ControlStack
	assert.Nil(t, cs.top())

	cs.push(Frame{Kind: FrameFunccall, Indent: 0, FuncName: "main", ReturnIP: -1})
	cs.push(Frame{Kind: FrameIf, Indent: 1, Taken: true})

	top := cs.top()
	if assert.NotNil(t, top) {
		assert.Equal(t, FrameIf, top.Kind)
		assert.Equal(t, 1, top.Indent)
	}

	popped := cs.pop()
	assert.Equal(t, FrameIf, popped.Kind)

	top = cs.top()
	if assert.NotNil(t, top) {
		assert.Equal(t, FrameFunccall, top.Kind)
		assert.Equal(t, "main", top.FuncName)
	}
}

func Test_FrameKind_String(t *testing.T) {
	assert.Equal(t, "funccall", FrameFunccall.String())
	assert.Equal(t, "if", FrameIf.String())
	assert.Equal(t, "while", FrameWhile.String())
}
