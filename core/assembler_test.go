package core_test

import (
	"strings"
	"testing"

	core "github.com/synnergy-labs/scl-runtime/core"
)

func TestAssemblePragmaMustBeFirst(t *testing.T) {
	_, err := core.Assemble("int 1\n#pragma version 2\n")
	if !core.IsKind(err, core.ErrPragmaNotAtFirstLine) {
		t.Fatalf("expected PRAGMA_NOT_AT_FIRST_LINE, got %v", err)
	}
}

func TestAssembleRejectsBadVersion(t *testing.T) {
	_, err := core.Assemble("#pragma version 99\nint 1\n")
	if !core.IsKind(err, core.ErrPragmaVersion) {
		t.Fatalf("expected PRAGMA_VERSION_ERROR, got %v", err)
	}
}

func TestAssembleSkipsCommentsAndBlankLines(t *testing.T) {
	prog, err := core.Assemble("#pragma version 2\n// a comment\n\nint 1\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(prog.Instructions) != 1 {
		t.Fatalf("expected 1 instruction, got %d", len(prog.Instructions))
	}
}

func TestAssembleUnknownOpcode(t *testing.T) {
	_, err := core.Assemble("#pragma version 2\nnosuchop\n")
	if !core.IsKind(err, core.ErrUnknownOpcode) {
		t.Fatalf("expected UNKNOWN_OPCODE, got %v", err)
	}
}

func TestAssembleLabelsAndBranch(t *testing.T) {
	src := strings.Join([]string{
		"#pragma version 2",
		"int 1",
		"bnz done",
		"int 0",
		"return",
		"done:",
		"int 1",
		"return",
	}, "\n")
	prog, err := core.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	found := false
	for _, inst := range prog.Instructions {
		if inst.Label == "done" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected label \"done\" to be recorded")
	}
}

func TestAssembleVersionGatesNewerOpcode(t *testing.T) {
	// pushint was introduced at version 3.
	_, err := core.Assemble("#pragma version 2\npushint 1\n")
	if !core.IsKind(err, core.ErrOpcodeVersionGated) {
		t.Fatalf("expected OPCODE_VERSION_GATED, got %v", err)
	}
}
