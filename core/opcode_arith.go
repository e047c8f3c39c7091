package core

func init() {
	registerOp("+", 1, simple("+", binUint64(addChecked)))
	registerOp("-", 1, simple("-", binUint64(subChecked)))
	registerOp("*", 1, simple("*", binUint64(mulChecked)))
	registerOp("/", 1, simple("/", binUint64(divChecked)))
	registerOp("%", 1, simple("%", binUint64(modChecked)))
	registerOp("addw", 2, simple("addw", opAddw))
	registerOp("mulw", 2, simple("mulw", opMulw))

	registerOp("==", 1, simple("==", opEq))
	registerOp("!=", 1, simple("!=", opNeq))
	registerOp("<", 1, simple("<", binUint64Bool(func(a, b uint64) bool { return a < b })))
	registerOp(">", 1, simple(">", binUint64Bool(func(a, b uint64) bool { return a > b })))
	registerOp("<=", 1, simple("<=", binUint64Bool(func(a, b uint64) bool { return a <= b })))
	registerOp(">=", 1, simple(">=", binUint64Bool(func(a, b uint64) bool { return a >= b })))

	registerOp("!", 1, simple("!", opNot))
	registerOp("&&", 1, simple("&&", binUint64Bool(func(a, b uint64) bool { return a != 0 && b != 0 })))
	registerOp("||", 1, simple("||", binUint64Bool(func(a, b uint64) bool { return a != 0 || b != 0 })))

	registerOp("&", 1, simple("&", binUint64(func(a, b uint64) (uint64, error) { return a & b, nil })))
	registerOp("|", 1, simple("|", binUint64(func(a, b uint64) (uint64, error) { return a | b, nil })))
	registerOp("^", 1, simple("^", binUint64(func(a, b uint64) (uint64, error) { return a ^ b, nil })))
	registerOp("~", 1, simple("~", opBitNot))
}

// binUint64 lifts a checked two-argument integer operation into an Exec
// function operating on the top two stack values: "a op b" with b popped
// first, then a, matching the operand order they were pushed in.
func binUint64(fn func(a, b uint64) (uint64, error)) func(ip *Interpreter) error {
	return func(ip *Interpreter) error {
		b, err := ip.Stack.PopUint64()
		if err != nil {
			return err
		}
		a, err := ip.Stack.PopUint64()
		if err != nil {
			return err
		}
		v, err := fn(a, b)
		if err != nil {
			return err
		}
		return ip.Stack.PushUint64(v)
	}
}

func binUint64Bool(fn func(a, b uint64) bool) func(ip *Interpreter) error {
	return func(ip *Interpreter) error {
		b, err := ip.Stack.PopUint64()
		if err != nil {
			return err
		}
		a, err := ip.Stack.PopUint64()
		if err != nil {
			return err
		}
		if fn(a, b) {
			return ip.Stack.PushUint64(1)
		}
		return ip.Stack.PushUint64(0)
	}
}

func addChecked(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, NewExecError(ErrUint64Overflow, "")
	}
	return sum, nil
}

func subChecked(a, b uint64) (uint64, error) {
	if b > a {
		return 0, NewExecError(ErrUint64Underflow, "")
	}
	return a - b, nil
}

func mulChecked(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	p := a * b
	if p/a != b {
		return 0, NewExecError(ErrUint64Overflow, "")
	}
	return p, nil
}

func divChecked(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, NewExecError(ErrZeroDiv, "/")
	}
	return a / b, nil
}

func modChecked(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, NewExecError(ErrZeroDiv, "%")
	}
	return a % b, nil
}

// opAddw pushes the 128-bit sum of the top two values as (high, low),
// matching mulw's carry-word-first, then-low-word order.
func opAddw(ip *Interpreter) error {
	b, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	a, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	sum := a + b
	var carry uint64
	if sum < a {
		carry = 1
	}
	if err := ip.Stack.PushUint64(carry); err != nil {
		return err
	}
	return ip.Stack.PushUint64(sum)
}

// opMulw pushes the 128-bit product of the top two values as (high, low).
func opMulw(ip *Interpreter) error {
	b, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	a, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	hi, lo := mul64(a, b)
	if err := ip.Stack.PushUint64(hi); err != nil {
		return err
	}
	return ip.Stack.PushUint64(lo)
}

// mul64 computes the full 128-bit product of two uint64 values via
// schoolbook multiplication on 32-bit halves, avoiding a big.Int allocation
// for this single hot path.
func mul64(a, b uint64) (hi, lo uint64) {
	const mask32 = 0xffffffff
	aLo, aHi := a&mask32, a>>32
	bLo, bHi := b&mask32, b>>32

	t := aLo * bLo
	w0 := t & mask32
	k := t >> 32

	t = aHi*bLo + k
	w1 := t & mask32
	w2 := t >> 32

	t = aLo*bHi + w1
	k = t >> 32

	hi = aHi*bHi + w2 + k
	lo = (t << 32) + w0
	return hi, lo
}

func opEq(ip *Interpreter) error {
	b, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	a, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	eq, err := valuesEqual(a, b)
	if err != nil {
		return err
	}
	if eq {
		return ip.Stack.PushUint64(1)
	}
	return ip.Stack.PushUint64(0)
}

func opNeq(ip *Interpreter) error {
	b, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	a, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	eq, err := valuesEqual(a, b)
	if err != nil {
		return err
	}
	if eq {
		return ip.Stack.PushUint64(0)
	}
	return ip.Stack.PushUint64(1)
}

// valuesEqual requires both operands to share a type, matching the strict
// comparison rules of every other binary opcode.
func valuesEqual(a, b Value) (bool, error) {
	if a.Type() != b.Type() {
		return false, NewTypeError(a.Type(), b.Type())
	}
	if a.IsBytes() {
		return string(a.Bytes()) == string(b.Bytes()), nil
	}
	return a.Uint64() == b.Uint64(), nil
}

func opNot(ip *Interpreter) error {
	v, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	if v == 0 {
		return ip.Stack.PushUint64(1)
	}
	return ip.Stack.PushUint64(0)
}

func opBitNot(ip *Interpreter) error {
	v, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	return ip.Stack.PushUint64(^v)
}
