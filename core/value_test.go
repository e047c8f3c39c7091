package core_test

import (
	"testing"

	core "github.com/synnergy-labs/scl-runtime/core"
)

func TestStackPushPopBounds(t *testing.T) {
	var s core.Stack
	for i := 0; i < core.MaxStackDepth; i++ {
		if err := s.PushUint64(uint64(i)); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if err := s.PushUint64(1); err == nil {
		t.Fatal("expected stack depth exceeded error")
	}
	if s.Len() != core.MaxStackDepth {
		t.Fatalf("len = %d, want %d", s.Len(), core.MaxStackDepth)
	}
}

func TestStackPopEmptyFails(t *testing.T) {
	var s core.Stack
	if _, err := s.Pop(); err == nil {
		t.Fatal("expected pop-on-empty error")
	}
}

func TestStackTypeMismatch(t *testing.T) {
	var s core.Stack
	_ = s.PushBytes([]byte("hi"))
	if _, err := s.PopUint64(); err == nil {
		t.Fatal("expected type mismatch popping uint64 from bytes value")
	}
}

func TestPushBytesRejectsOverlong(t *testing.T) {
	var s core.Stack
	big := make([]byte, core.MaxBytesLen+1)
	if err := s.PushBytes(big); err == nil {
		t.Fatal("expected long-input error")
	}
}

func TestAsBool(t *testing.T) {
	if core.Uint64Value(0).AsBool() {
		t.Fatal("zero should be falsy")
	}
	if !core.Uint64Value(1).AsBool() {
		t.Fatal("nonzero should be truthy")
	}
	if core.BytesValue([]byte{1}).AsBool() {
		t.Fatal("bytes value is never truthy")
	}
}
