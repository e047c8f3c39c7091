package core_test

import (
	"testing"

	core "github.com/synnergy-labs/scl-runtime/core"
)

func TestTxnResolvesAmount(t *testing.T) {
	prog, err := core.Assemble("#pragma version 2\ntxn Amount\nint 500\n==\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	tx := &core.Transaction{Type: core.TxPay, Amount: 500}
	ip := core.NewInterpreter(prog, core.ModeStateless, tx, nil, &core.Globals{}, nil)
	accepted, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !accepted {
		t.Fatal("expected txn Amount to resolve the transaction's Amount field")
	}
}

func TestTxnUnknownFieldFails(t *testing.T) {
	prog, err := core.Assemble("#pragma version 2\ntxn NoSuchField\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	ip := core.NewInterpreter(prog, core.ModeStateless, &core.Transaction{}, nil, &core.Globals{}, nil)
	if _, err := ip.Run(); !core.IsKind(err, core.ErrUnknownTxField) {
		t.Fatalf("expected UNKNOWN_TX_FIELD, got %v", err)
	}
}

func TestTxnaIndexesApplicationArgs(t *testing.T) {
	prog, err := core.Assemble("#pragma version 2\ntxna ApplicationArgs 1\nbyte \"second\"\n==\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	tx := &core.Transaction{ApplicationArgs: [][]byte{[]byte("first"), []byte("second")}}
	ip := core.NewInterpreter(prog, core.ModeStateless, tx, nil, &core.Globals{}, nil)
	accepted, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !accepted {
		t.Fatal("expected txna ApplicationArgs 1 to resolve the second argument")
	}
}

func TestTxnaOutOfBoundsFails(t *testing.T) {
	prog, _ := core.Assemble("#pragma version 2\ntxna ApplicationArgs 0\n")
	tx := &core.Transaction{}
	ip := core.NewInterpreter(prog, core.ModeStateless, tx, nil, &core.Globals{}, nil)
	if _, err := ip.Run(); !core.IsKind(err, core.ErrIndexOutOfBound) {
		t.Fatalf("expected INDEX_OUT_OF_BOUND, got %v", err)
	}
}

func TestGtxnReadsOtherGroupMember(t *testing.T) {
	prog, err := core.Assemble("#pragma version 2\ngtxn 0 Amount\nint 77\n==\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	first := &core.Transaction{Amount: 77}
	second := &core.Transaction{Amount: 1}
	group := []*core.Transaction{first, second}
	ip := core.NewInterpreter(prog, core.ModeStateless, second, group, &core.Globals{}, nil)
	accepted, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !accepted {
		t.Fatal("expected gtxn 0 Amount to read the first group member's Amount")
	}
}

func TestGtxnIndexOutOfRangeFails(t *testing.T) {
	prog, _ := core.Assemble("#pragma version 2\ngtxn 5 Amount\npop\nint 1\n")
	group := []*core.Transaction{{}}
	ip := core.NewInterpreter(prog, core.ModeStateless, group[0], group, &core.Globals{}, nil)
	if _, err := ip.Run(); !core.IsKind(err, core.ErrIndexOutOfBound) {
		t.Fatalf("expected INDEX_OUT_OF_BOUND, got %v", err)
	}
}

func TestGtxnaIndexesArrayFieldOfGroupMember(t *testing.T) {
	prog, err := core.Assemble("#pragma version 2\ngtxna 1 ApplicationArgs 0\nbyte \"hi\"\n==\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	first := &core.Transaction{}
	second := &core.Transaction{ApplicationArgs: [][]byte{[]byte("hi")}}
	group := []*core.Transaction{first, second}
	ip := core.NewInterpreter(prog, core.ModeStateless, first, group, &core.Globals{}, nil)
	accepted, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !accepted {
		t.Fatal("expected gtxna 1 ApplicationArgs 0 to read the second group member's argument")
	}
}

func TestGtxnsReadsIndexFromStack(t *testing.T) {
	prog, err := core.Assemble("#pragma version 3\nint 0\ngtxns Amount\nint 42\n==\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	first := &core.Transaction{Amount: 42}
	group := []*core.Transaction{first}
	ip := core.NewInterpreter(prog, core.ModeStateless, first, group, &core.Globals{}, nil)
	accepted, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !accepted {
		t.Fatal("expected gtxns Amount with index 0 on the stack to read the first member's Amount")
	}
}

func TestGtxnsaReadsArrayFieldWithIndexFromStack(t *testing.T) {
	prog, err := core.Assemble("#pragma version 3\nint 0\ngtxnsa ApplicationArgs 0\nbyte \"x\"\n==\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	tx := &core.Transaction{ApplicationArgs: [][]byte{[]byte("x")}}
	group := []*core.Transaction{tx}
	ip := core.NewInterpreter(prog, core.ModeStateless, tx, group, &core.Globals{}, nil)
	accepted, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !accepted {
		t.Fatal("expected gtxnsa to combine a stack-supplied group index with an immediate field/array index")
	}
}
