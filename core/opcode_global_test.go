package core_test

import (
	"testing"

	core "github.com/synnergy-labs/scl-runtime/core"
)

func TestGlobalRoundReflectsInjectedValue(t *testing.T) {
	prog, err := core.Assemble("#pragma version 2\nglobal Round\nint 42\n==\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	globals := &core.Globals{Round: 42}
	ip := core.NewInterpreter(prog, core.ModeStateless, &core.Transaction{}, nil, globals, nil)
	accepted, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !accepted {
		t.Fatal("expected global Round to reflect the injected value")
	}
}

func TestGlobalGroupSizeReflectsGroupLength(t *testing.T) {
	prog, err := core.Assemble("#pragma version 2\nglobal GroupSize\nint 3\n==\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	group := []*core.Transaction{{}, {}, {}}
	ip := core.NewInterpreter(prog, core.ModeStateless, group[0], group, &core.Globals{}, nil)
	accepted, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !accepted {
		t.Fatal("expected global GroupSize to equal the group length")
	}
}

func TestGlobalUnknownFieldFails(t *testing.T) {
	prog, err := core.Assemble("#pragma version 2\nglobal NoSuchField\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	ip := core.NewInterpreter(prog, core.ModeStateless, &core.Transaction{}, nil, &core.Globals{}, nil)
	if _, err := ip.Run(); !core.IsKind(err, core.ErrUnknownGlobalField) {
		t.Fatalf("expected UNKNOWN_GLOBAL_FIELD, got %v", err)
	}
}
