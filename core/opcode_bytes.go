package core

import "encoding/binary"

func init() {
	registerOp("len", 1, simple("len", opLen))
	registerOp("itob", 1, simple("itob", opItob))
	registerOp("btoi", 1, simple("btoi", opBtoi))
	registerOp("concat", 1, simple("concat", opConcat))
	registerOp("substring", 2, constructSubstring)
	registerOp("substring3", 2, simple("substring3", opSubstring3))
	registerOp("setbit", 3, simple("setbit", opSetBit))
	registerOp("getbit", 3, simple("getbit", opGetBit))
	registerOp("setbyte", 3, simple("setbyte", opSetByte))
	registerOp("getbyte", 3, simple("getbyte", opGetByte))
}

func opLen(ip *Interpreter) error {
	b, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	return ip.Stack.PushUint64(uint64(len(b)))
}

// opItob renders a Uint64 as its big-endian 8-byte form.
func opItob(ip *Interpreter) error {
	v, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return ip.Stack.PushBytes(buf)
}

// opBtoi parses a big-endian byte string of at most 8 bytes as a Uint64,
// left-padding with zeros.
func opBtoi(ip *Interpreter) error {
	b, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	if len(b) > 8 {
		return NewExecError(ErrLongInput, "btoi input longer than 8 bytes")
	}
	var buf [8]byte
	copy(buf[8-len(b):], b)
	return ip.Stack.PushUint64(binary.BigEndian.Uint64(buf[:]))
}

func opConcat(ip *Interpreter) error {
	b, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	a, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	if len(a)+len(b) > MaxBytesLen {
		return NewExecError(ErrConcat, "concat result exceeds max byte length")
	}
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return ip.Stack.PushBytes(out)
}

// constructSubstring builds `substring S E`: the start/end offsets are
// compile-time immediates, unlike substring3 whose offsets come off the
// stack.
func constructSubstring(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("substring", args, 2, line); err != nil {
		return nil, err
	}
	start, err := argInt(args[0], line)
	if err != nil {
		return nil, err
	}
	end, err := argInt(args[1], line)
	if err != nil {
		return nil, err
	}
	return &Instruction{Name: "substring", Line: line, Exec: func(ip *Interpreter) error {
		b, err := ip.Stack.PopBytes()
		if err != nil {
			return err
		}
		out, err := sliceBytes(b, start, end)
		if err != nil {
			return err
		}
		return ip.Stack.PushBytes(out)
	}}, nil
}

func opSubstring3(ip *Interpreter) error {
	end, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	start, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	b, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	out, err := sliceBytes(b, start, end)
	if err != nil {
		return err
	}
	return ip.Stack.PushBytes(out)
}

func sliceBytes(b []byte, start, end uint64) ([]byte, error) {
	if end < start {
		return nil, NewExecError(ErrSubstringEndBeforeStrt, "")
	}
	if end > uint64(len(b)) {
		return nil, NewExecError(ErrSubstringRangeBeyond, "")
	}
	out := make([]byte, end-start)
	copy(out, b[start:end])
	return out, nil
}

// opSetBit sets a single addressed bit within a Uint64 or a byte string to
// the given value, rejecting any value argument other than 0 or 1. Byte-string targets index
// bits MSB-first; integer targets index bit i as weight 1<<i.
func opSetBit(ip *Interpreter) error {
	value, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	if value > 1 {
		return NewExecError(ErrSetBitValue, "")
	}
	idx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	target, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	if target.IsBytes() {
		b := append([]byte(nil), target.Bytes()...)
		byteIdx := idx / 8
		if byteIdx >= uint64(len(b)) {
			return NewExecError(ErrIndexOutOfBound, "setbit byte index")
		}
		bitIdx := 7 - (idx % 8)
		if value == 1 {
			b[byteIdx] |= 1 << bitIdx
		} else {
			b[byteIdx] &^= 1 << bitIdx
		}
		return ip.Stack.PushBytes(b)
	}
	if idx >= 64 {
		return NewExecError(ErrIndexOutOfBound, "setbit uint64 index")
	}
	v := target.Uint64()
	bitIdx := idx
	if value == 1 {
		v |= 1 << bitIdx
	} else {
		v &^= 1 << bitIdx
	}
	return ip.Stack.PushUint64(v)
}

func opGetBit(ip *Interpreter) error {
	idx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	target, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	if target.IsBytes() {
		b := target.Bytes()
		byteIdx := idx / 8
		if byteIdx >= uint64(len(b)) {
			return NewExecError(ErrIndexOutOfBound, "getbit byte index")
		}
		bitIdx := 7 - (idx % 8)
		if b[byteIdx]&(1<<bitIdx) != 0 {
			return ip.Stack.PushUint64(1)
		}
		return ip.Stack.PushUint64(0)
	}
	if idx >= 64 {
		return NewExecError(ErrIndexOutOfBound, "getbit uint64 index")
	}
	v := target.Uint64()
	bitIdx := idx
	if v&(1<<bitIdx) != 0 {
		return ip.Stack.PushUint64(1)
	}
	return ip.Stack.PushUint64(0)
}

func opSetByte(ip *Interpreter) error {
	value, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	if value > 255 {
		return NewExecError(ErrInvalidUint8, "")
	}
	idx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	target, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	if idx >= uint64(len(target)) {
		return NewExecError(ErrIndexOutOfBound, "setbyte index")
	}
	b := append([]byte(nil), target...)
	b[idx] = byte(value)
	return ip.Stack.PushBytes(b)
}

func opGetByte(ip *Interpreter) error {
	idx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	target, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	if idx >= uint64(len(target)) {
		return NewExecError(ErrIndexOutOfBound, "getbyte index")
	}
	return ip.Stack.PushUint64(uint64(target[idx]))
}
