package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return zap.New(core), logs
}

func TestIndexStackLIFO(t *testing.T) {
	s := NewIndexStack(3, nil, false)
	assert.True(t, s.Empty())
	assert.False(t, s.Full())
	assert.Equal(t, uint32(3), s.Cap())

	s.Push(7)
	s.Push(0)
	s.Push(9)
	assert.True(t, s.Full())
	assert.False(t, s.Empty())
	assert.Equal(t, uint32(9), s.Peek())

	assert.Equal(t, uint32(9), s.Pop())
	assert.Equal(t, uint32(0), s.Pop())
	assert.False(t, s.Empty(), "one element left")
	assert.Equal(t, uint32(7), s.Pop())
	assert.True(t, s.Empty())
	assert.Equal(t, uint32(0), s.Len())
}

func TestIndexStackOverflowIsLoggedNoOp(t *testing.T) {
	log, logs := observedLogger()
	s := NewIndexStack(1, log, false)
	s.Push(4)
	s.Push(5)

	require.Equal(t, 1, logs.FilterMessage("index stack").Len())
	assert.Equal(t, ErrStackFull.Error(), logs.All()[0].ContextMap()["error"])
	assert.Equal(t, uint32(1), s.Len())
	assert.Equal(t, uint32(4), s.Peek())
}

func TestIndexStackUnderflowReturnsZero(t *testing.T) {
	log, logs := observedLogger()
	s := NewIndexStack(2, log, false)

	assert.Equal(t, uint32(0), s.Pop())
	assert.Equal(t, uint32(0), s.Peek())
	assert.Equal(t, 2, logs.Len())
	assert.True(t, s.Empty())
}

func TestIndexStackStrictPanics(t *testing.T) {
	s := NewIndexStack(1, nil, true)
	assert.PanicsWithValue(t, ErrStackEmpty, func() { s.Pop() })
	s.Push(1)
	assert.PanicsWithValue(t, ErrStackFull, func() { s.Push(2) })
}

func TestSeededStackHandsOutZeroFirst(t *testing.T) {
	s := newSeededStack(4, nil, false)
	require.True(t, s.Full())
	for want := uint32(0); want < 4; want++ {
		assert.Equal(t, want, s.Pop())
	}
	assert.True(t, s.Empty())
}

func TestIndexStackRelease(t *testing.T) {
	s := newSeededStack(4, nil, false)
	s.Release()
	assert.Equal(t, uint32(0), s.Cap())
	assert.True(t, s.Empty())
	assert.True(t, s.Full())
}
