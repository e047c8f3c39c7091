package core_test

import (
	"testing"

	core "github.com/synnergy-labs/scl-runtime/core"
)

func TestIntcblockAndIndexedForms(t *testing.T) {
	src := "#pragma version 2\n" +
		"intcblock 10 20 30 40\n" +
		"intc 2\n" +
		"int 30\n" +
		"==\n"
	if !runExpr2(t, src) {
		t.Fatal("expected intc 2 to read the third pooled constant")
	}
}

func TestIntcShorthandForms(t *testing.T) {
	src := "#pragma version 2\n" +
		"intcblock 1 2 3 4\n" +
		"intc_0\n" +
		"intc_1\n" +
		"+\n" +
		"intc_2\n" +
		"intc_3\n" +
		"+\n" +
		"+\n" +
		"int 10\n" +
		"==\n"
	if !runExpr2(t, src) {
		t.Fatal("expected intc_0..3 to sum to 10")
	}
}

func TestBytecblockAndIndexedForms(t *testing.T) {
	src := "#pragma version 2\n" +
		"bytecblock \"aa\" \"bb\" \"cc\"\n" +
		"bytec 1\n" +
		"byte \"bb\"\n" +
		"==\n"
	if !runExpr2(t, src) {
		t.Fatal("expected bytec 1 to read the second pooled byte constant")
	}
}

func TestBytecShorthandForms(t *testing.T) {
	src := "#pragma version 2\n" +
		"bytecblock \"w\" \"x\" \"y\" \"z\"\n" +
		"bytec_0\n" +
		"byte \"w\"\n" +
		"==\n"
	if !runExpr2(t, src) {
		t.Fatal("expected bytec_0 to read the first pooled byte constant")
	}
}

func TestIntcblockExceedsMaxLengthFails(t *testing.T) {
	src := "#pragma version 2\nintcblock"
	for i := 0; i < 257; i++ {
		src += " 1"
	}
	src += "\n"
	_, err := core.Assemble(src)
	if !core.IsKind(err, core.ErrAssertArrLength) {
		t.Fatalf("expected ASSERT_ARR_LENGTH, got %v", err)
	}
}

func TestPushintAndPushbytes(t *testing.T) {
	src := "#pragma version 3\n" +
		"pushint 99\n" +
		"pushbytes \"tag\"\n" +
		"pop\n" +
		"int 99\n" +
		"==\n"
	if !runV3(t, src) {
		t.Fatal("expected pushint 99 to leave 99 on the stack after the pushbytes value is popped")
	}
}

func TestPushintRequiresVersion3(t *testing.T) {
	_, err := core.Assemble("#pragma version 2\npushint 1\n")
	if !core.IsKind(err, core.ErrOpcodeVersionGated) {
		t.Fatalf("expected OPCODE_VERSION_GATED, got %v", err)
	}
}

func TestAddrPseudoOpPushesRawPublicKey(t *testing.T) {
	var raw core.Address
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	src := "#pragma version 2\naddr " + raw.String() + "\nbyte 0x" + hexOf(raw.Bytes()) + "\n==\n"
	if !runExpr2(t, src) {
		t.Fatal("expected addr pseudo-op to push the raw 32-byte public key")
	}
}

func TestByteLiteralForms(t *testing.T) {
	if !runExpr2(t, "byte 0x616263\nbyte \"abc\"\n==\n") {
		t.Fatal("expected 0x616263 to equal the literal string \"abc\"")
	}
	if !runExpr2(t, "byte base64 \"YWJj\"\nbyte \"abc\"\n==\n") {
		t.Fatal("expected base64 \"YWJj\" to decode to \"abc\"")
	}
	if !runExpr2(t, "byte base32 \"MFRGG\"\nbyte \"abc\"\n==\n") {
		t.Fatal("expected base32 \"MFRGG\" to decode to \"abc\"")
	}
}

func TestBytecblockAcceptsTaggedLiteralsAmongOrdinaryOnes(t *testing.T) {
	src := "#pragma version 2\n" +
		"bytecblock \"aa\" base64 \"YWJj\" base32 \"MFRGG\"\n" +
		"bytec_1\n" +
		"byte \"abc\"\n" +
		"==\n"
	if !runExpr2(t, src) {
		t.Fatal("expected bytecblock entry 1 (base64 \"YWJj\") to decode to \"abc\"")
	}
}

func TestIntcblockRejectsEmptyPool(t *testing.T) {
	_, err := core.Assemble("#pragma version 2\nintcblock\n")
	if !core.IsKind(err, core.ErrAssertArrLength) {
		t.Fatalf("expected ASSERT_ARR_LENGTH, got %v", err)
	}
}

func TestBytecblockRejectsEmptyPool(t *testing.T) {
	_, err := core.Assemble("#pragma version 2\nbytecblock\n")
	if !core.IsKind(err, core.ErrAssertArrLength) {
		t.Fatalf("expected ASSERT_ARR_LENGTH, got %v", err)
	}
}

// runExpr2 mirrors runExpr from opcode_arith_test.go but without prepending a
// pragma line, since several tests here need full control of the program
// header (e.g. forms that already declare their own intcblock).
func runExpr2(t *testing.T, src string) bool {
	t.Helper()
	prog, err := core.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	ip := core.NewInterpreter(prog, core.ModeStateless, &core.Transaction{}, nil, &core.Globals{}, nil)
	accepted, err := ip.Run()
	if err != nil && !core.IsKind(err, core.ErrRejectedByLogic) {
		t.Fatalf("Run: %v", err)
	}
	return accepted
}

func hexOf(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0x0f]
	}
	return string(out)
}
