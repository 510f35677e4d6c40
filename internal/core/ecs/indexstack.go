package ecs

import "go.uber.org/zap"

// IndexStack is a fixed-capacity LIFO free list of slot indices.
// Entity indices and component pool slots are both recycled through one.
type IndexStack struct {
	items  []uint32
	top    uint32
	empty  bool
	log    *zap.Logger
	strict bool
}

func NewIndexStack(capacity uint32, log *zap.Logger, strict bool) *IndexStack {
	if log == nil {
		log = zap.NewNop()
	}
	return &IndexStack{
		items:  make([]uint32, capacity),
		empty:  true,
		log:    log,
		strict: strict,
	}
}

// newSeededStack returns a full stack holding every index in [0, n),
// pushed highest first so that index 0 is handed out first.
func newSeededStack(n uint32, log *zap.Logger, strict bool) *IndexStack {
	s := NewIndexStack(n, log, strict)
	for i := n; i > 0; i-- {
		s.Push(i - 1)
	}
	return s
}

// Push stores v on top of the stack. A full stack drops v.
func (s *IndexStack) Push(v uint32) {
	if s.Full() {
		s.fail(ErrStackFull, zap.Uint32("value", v))
		return
	}
	s.items[s.top] = v
	s.top++
	s.empty = false
}

// Pop removes and returns the most recently pushed value. An empty stack
// returns 0, which cannot be told apart from a real index 0.
func (s *IndexStack) Pop() uint32 {
	if s.empty {
		s.fail(ErrStackEmpty)
		return 0
	}
	s.top--
	if s.top == 0 {
		s.empty = true
	}
	return s.items[s.top]
}

// Peek returns the most recently pushed value without removing it.
func (s *IndexStack) Peek() uint32 {
	if s.empty {
		s.fail(ErrStackEmpty)
		return 0
	}
	return s.items[s.top-1]
}

func (s *IndexStack) Full() bool  { return s.top >= uint32(len(s.items)) }
func (s *IndexStack) Empty() bool { return s.empty }
func (s *IndexStack) Cap() uint32 { return uint32(len(s.items)) }
func (s *IndexStack) Len() uint32 { return s.top }

// Release drops the backing storage. The stack holds nothing afterwards.
func (s *IndexStack) Release() {
	s.items = nil
	s.top = 0
	s.empty = true
}

func (s *IndexStack) fail(err error, fields ...zap.Field) {
	if s.strict {
		panic(err)
	}
	s.log.Warn("index stack", append(fields, zap.Error(err), zap.Uint32("cap", s.Cap()))...)
}
