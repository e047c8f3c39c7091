package core_test

import (
	"crypto/sha256"
	"testing"

	"golang.org/x/crypto/ed25519"

	core "github.com/synnergy-labs/scl-runtime/core"
)

func TestSha256Opcode(t *testing.T) {
	prog, _ := core.Assemble("#pragma version 2\nbyte \"abc\"\nsha256\nlen\nint 32\n==\n")
	ip := core.NewInterpreter(prog, core.ModeStateless, &core.Transaction{}, nil, &core.Globals{}, nil)
	accepted, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !accepted {
		t.Fatal("expected sha256 digest to be 32 bytes")
	}
}

func TestEd25519VerifyUsesDomainSeparatedMessage(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	const progSrc = "#pragma version 2\n" +
		"txna ApplicationArgs 0\n" +
		"txna ApplicationArgs 1\n" +
		"txna ApplicationArgs 2\n" +
		"ed25519verify\n"

	progHash := sha256.Sum256([]byte(progSrc))
	data := []byte("payload")
	msg := append([]byte("ProgData"), progHash[:]...)
	msg = append(msg, data...)
	sig := ed25519.Sign(priv, msg)

	tx := &core.Transaction{ApplicationArgs: [][]byte{data, sig, pub}}
	prog, err := core.Assemble(progSrc)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	ip := core.NewInterpreter(prog, core.ModeStateless, tx, []*core.Transaction{tx}, &core.Globals{}, nil)
	accepted, err := ip.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !accepted {
		t.Fatal("expected signature over the domain-separated message to verify")
	}
}

func TestEd25519VerifyRejectsSignatureOverRawDataOnly(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)
	const progSrc = "#pragma version 2\n" +
		"txna ApplicationArgs 0\n" +
		"txna ApplicationArgs 1\n" +
		"txna ApplicationArgs 2\n" +
		"ed25519verify\n"

	data := []byte("payload")
	sig := ed25519.Sign(priv, data) // missing the "ProgData" || program-hash prefix

	tx := &core.Transaction{ApplicationArgs: [][]byte{data, sig, pub}}
	prog, _ := core.Assemble(progSrc)
	ip := core.NewInterpreter(prog, core.ModeStateless, tx, []*core.Transaction{tx}, &core.Globals{}, nil)
	accepted, err := ip.Run()
	if !core.IsKind(err, core.ErrRejectedByLogic) {
		t.Fatalf("expected REJECTED_BY_LOGIC, got %v", err)
	}
	if accepted {
		t.Fatal("expected verification to fail without the domain-separated prefix")
	}
}
