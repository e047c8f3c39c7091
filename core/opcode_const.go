package core

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

func init() {
	registerOp("intcblock", 1, constructIntcblock)
	registerOp("intc", 1, constructIntc)
	registerOp("intc_0", 1, simple("intc_0", intcIndex(0)))
	registerOp("intc_1", 1, simple("intc_1", intcIndex(1)))
	registerOp("intc_2", 1, simple("intc_2", intcIndex(2)))
	registerOp("intc_3", 1, simple("intc_3", intcIndex(3)))

	registerOp("bytecblock", 1, constructBytecblock)
	registerOp("bytec", 1, constructBytec)
	registerOp("bytec_0", 1, simple("bytec_0", bytecIndex(0)))
	registerOp("bytec_1", 1, simple("bytec_1", bytecIndex(1)))
	registerOp("bytec_2", 1, simple("bytec_2", bytecIndex(2)))
	registerOp("bytec_3", 1, simple("bytec_3", bytecIndex(3)))

	registerOp("pushint", 3, constructPushint)
	registerOp("pushbytes", 3, constructPushbytes)
	registerOp("int", 1, constructIntPseudo)
	registerOp("byte", 1, constructBytePseudo)
	registerOp("addr", 1, constructAddrPseudo)
}

// constructIntcblock parses the `intcblock v0 v1 ...` const pool declaration
// (at most MaxConstBlockLen entries), storing the parsed pool directly into
// the Instruction so Exec just assigns it onto the Interpreter.
func constructIntcblock(args []string, version, line int) (*Instruction, error) {
	if len(args) == 0 {
		return nil, NewLineError(ErrAssertArrLength, line, "intcblock requires at least one entry")
	}
	if len(args) > MaxConstBlockLen {
		return nil, NewLineError(ErrAssertArrLength, line, "intcblock exceeds max length")
	}
	pool := make([]uint64, len(args))
	for i, a := range args {
		v, err := argInt(a, line)
		if err != nil {
			return nil, err
		}
		pool[i] = v
	}
	return &Instruction{Name: "intcblock", Line: line, Exec: func(ip *Interpreter) error {
		ip.IntC = pool
		return nil
	}}, nil
}

func constructIntc(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("intc", args, 1, line); err != nil {
		return nil, err
	}
	idx, err := argInt(args[0], line)
	if err != nil {
		return nil, err
	}
	return &Instruction{Name: "intc", Line: line, Exec: intcIndex(int(idx))}, nil
}

func intcIndex(idx int) func(ip *Interpreter) error {
	return func(ip *Interpreter) error {
		if idx < 0 || idx >= len(ip.IntC) {
			return NewExecError(ErrIndexOutOfBound, "intc index out of range")
		}
		return ip.Stack.PushUint64(ip.IntC[idx])
	}
}

func constructBytecblock(args []string, version, line int) (*Instruction, error) {
	if len(args) == 0 {
		return nil, NewLineError(ErrAssertArrLength, line, "bytecblock requires at least one entry")
	}
	var pool [][]byte
	for i := 0; i < len(args); {
		b, consumed, err := parseByteLiteralAt(args, i, line)
		if err != nil {
			return nil, err
		}
		pool = append(pool, b)
		i += consumed
	}
	if len(pool) > MaxConstBlockLen {
		return nil, NewLineError(ErrAssertArrLength, line, "bytecblock exceeds max length")
	}
	return &Instruction{Name: "bytecblock", Line: line, Exec: func(ip *Interpreter) error {
		ip.ByteC = pool
		return nil
	}}, nil
}

func constructBytec(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("bytec", args, 1, line); err != nil {
		return nil, err
	}
	idx, err := argInt(args[0], line)
	if err != nil {
		return nil, err
	}
	return &Instruction{Name: "bytec", Line: line, Exec: bytecIndex(int(idx))}, nil
}

func bytecIndex(idx int) func(ip *Interpreter) error {
	return func(ip *Interpreter) error {
		if idx < 0 || idx >= len(ip.ByteC) {
			return NewExecError(ErrIndexOutOfBound, "bytec index out of range")
		}
		return ip.Stack.PushBytes(ip.ByteC[idx])
	}
}

// constructPushint/constructPushbytes push an immediate directly, bypassing
// the const pool. Useful for single-use literals that don't warrant a pool
// slot.
func constructPushint(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("pushint", args, 1, line); err != nil {
		return nil, err
	}
	v, err := argInt(args[0], line)
	if err != nil {
		return nil, err
	}
	return &Instruction{Name: "pushint", Line: line, Exec: func(ip *Interpreter) error {
		return ip.Stack.PushUint64(v)
	}}, nil
}

func constructPushbytes(args []string, version, line int) (*Instruction, error) {
	b, err := parseSoleByteLiteral("pushbytes", args, line)
	if err != nil {
		return nil, err
	}
	return &Instruction{Name: "pushbytes", Line: line, Exec: func(ip *Interpreter) error {
		return ip.Stack.PushBytes(b)
	}}, nil
}

// constructIntPseudo implements the `int N` assembler pseudo-op: a plain
// decimal literal pushed straight onto the stack, with no const-pool
// indirection.
func constructIntPseudo(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("int", args, 1, line); err != nil {
		return nil, err
	}
	v, err := argInt(args[0], line)
	if err != nil {
		return nil, err
	}
	return &Instruction{Name: "int", Line: line, Exec: func(ip *Interpreter) error {
		return ip.Stack.PushUint64(v)
	}}, nil
}

// constructBytePseudo implements `byte "literal"`, `byte 0x...`,
// `byte base64 "..."` and `byte base32 "..."` literal forms.
func constructBytePseudo(args []string, version, line int) (*Instruction, error) {
	b, err := parseSoleByteLiteral("byte", args, line)
	if err != nil {
		return nil, err
	}
	return &Instruction{Name: "byte", Line: line, Exec: func(ip *Interpreter) error {
		return ip.Stack.PushBytes(b)
	}}, nil
}

// constructAddrPseudo implements `addr CHECKSUMMEDADDRESS`, pushing the raw
// 32-byte public key as a Bytes value.
func constructAddrPseudo(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("addr", args, 1, line); err != nil {
		return nil, err
	}
	a, err := DecodeAddress(args[0])
	if err != nil {
		return nil, err
	}
	raw := a.Bytes()
	return &Instruction{Name: "addr", Line: line, Exec: func(ip *Interpreter) error {
		return ip.Stack.PushBytes(raw)
	}}, nil
}

// parseByteLiteralAt parses one byte-string literal starting at args[i],
// returning the decoded bytes and the number of tokens it consumed (1 for
// "literal"/0xHEX forms, 2 for the tagged base32/base64 forms since the
// tokenizer splits `base64 "..."` into separate tag and quoted-string
// tokens). Used by bytecblock to walk a whitespace-separated run of entries
// of mixed form, and by parseSoleByteLiteral for single-literal contexts.
func parseByteLiteralAt(args []string, i int, line int) ([]byte, int, error) {
	arg := args[i]
	switch {
	case arg == "base64" || arg == "base32":
		if i+1 >= len(args) {
			return nil, 0, NewLineError(ErrAssertFieldLength, line, arg+" literal missing quoted string")
		}
		lit := args[i+1]
		if !(strings.HasPrefix(lit, `"`) && strings.HasSuffix(lit, `"`) && len(lit) >= 2) {
			return nil, 0, NewLineError(ErrAssertFieldLength, line, arg+" literal requires a quoted string")
		}
		s := lit[1 : len(lit)-1]
		var b []byte
		var err error
		if arg == "base64" {
			b, err = base64.StdEncoding.DecodeString(s)
		} else {
			b, err = base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s)
		}
		if err != nil {
			return nil, 0, NewLineError(ErrAssertFieldLength, line, "invalid "+arg+" literal: "+lit)
		}
		return b, 2, nil
	case strings.HasPrefix(arg, `"`) && strings.HasSuffix(arg, `"`) && len(arg) >= 2:
		return []byte(arg[1 : len(arg)-1]), 1, nil
	case strings.HasPrefix(arg, "0x"):
		b, err := hex.DecodeString(arg[2:])
		if err != nil {
			return nil, 0, NewLineError(ErrAssertFieldLength, line, "invalid hex literal: "+arg)
		}
		return b, 1, nil
	default:
		return nil, 0, NewLineError(ErrAssertFieldLength, line, "unrecognized byte literal: "+arg)
	}
}

// parseSoleByteLiteral parses a byte-literal expected to be the only
// argument to op (byte/pushbytes), rejecting trailing tokens beyond what
// the literal form consumed.
func parseSoleByteLiteral(op string, args []string, line int) ([]byte, error) {
	if len(args) == 0 {
		return nil, NewLineError(ErrAssertFieldLength, line, op+" expects a byte literal argument")
	}
	b, consumed, err := parseByteLiteralAt(args, 0, line)
	if err != nil {
		return nil, err
	}
	if consumed != len(args) {
		return nil, NewLineError(ErrAssertFieldLength, line, op+": unexpected trailing arguments")
	}
	return b, nil
}
