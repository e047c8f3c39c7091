package core

func init() {
	registerOp("bnz", 1, constructCondBranch("bnz", true))
	registerOp("bz", 1, constructCondBranch("bz", false))
	registerOp("b", 1, constructJump)

	registerOp("return", 2, simple("return", opReturn))
	registerOp("err", 1, simple("err", opErr))
	registerOp("assert", 3, simple("assert", opAssert))

	registerOp("pop", 1, simple("pop", opPop))
	registerOp("dup", 1, simple("dup", opDup))
	registerOp("dup2", 2, simple("dup2", opDup2))
	registerOp("swap", 3, simple("swap", opSwap))
	registerOp("select", 3, simple("select", opSelect))
	registerOp("dig", 3, constructDig)
}

// constructCondBranch builds bnz/bz: pop a value and jump to label iff its
// truthiness matches wantNonZero.
func constructCondBranch(name string, wantNonZero bool) opConstructor {
	return func(args []string, version, line int) (*Instruction, error) {
		if err := requireArgs(name, args, 1, line); err != nil {
			return nil, err
		}
		label := args[0]
		return &Instruction{Name: name, Line: line, Exec: func(ip *Interpreter) error {
			top, err := ip.Stack.PopUint64()
			if err != nil {
				return err
			}
			if (top != 0) == wantNonZero {
				return ip.jumpToLabel(label)
			}
			return nil
		}}, nil
	}
}

// constructJump builds `b`, an unconditional branch to label.
func constructJump(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("b", args, 1, line); err != nil {
		return nil, err
	}
	label := args[0]
	return &Instruction{Name: "b", Line: line, Exec: func(ip *Interpreter) error {
		return ip.jumpToLabel(label)
	}}, nil
}

// opReturn pops any remaining stack, pushes back only the former top value,
// and halts the fetch loop: the acceptance check then sees a stack of
// exactly one element regardless of how much was left behind.
func opReturn(ip *Interpreter) error {
	top, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	for ip.Stack.Len() > 0 {
		if _, err := ip.Stack.Pop(); err != nil {
			return err
		}
	}
	if err := ip.Stack.Push(top); err != nil {
		return err
	}
	ip.returned = true
	return nil
}

func opErr(ip *Interpreter) error {
	return NewExecError(ErrTealEncounteredErr, "err opcode")
}

// opAssert pops a value and fails LOGIC_REJECTION unless it is a nonzero
// Uint64.
func opAssert(ip *Interpreter) error {
	v, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	if v == 0 {
		return NewExecError(ErrLogicRejection, "assert failed")
	}
	return nil
}

func opPop(ip *Interpreter) error {
	_, err := ip.Stack.Pop()
	return err
}

func opDup(ip *Interpreter) error {
	v, err := ip.Stack.Peek(0)
	if err != nil {
		return err
	}
	return ip.Stack.Push(v)
}

// opDup2 duplicates the top two stack elements as a pair, preserving order.
func opDup2(ip *Interpreter) error {
	b, err := ip.Stack.Peek(0)
	if err != nil {
		return err
	}
	a, err := ip.Stack.Peek(1)
	if err != nil {
		return err
	}
	if err := ip.Stack.Push(a); err != nil {
		return err
	}
	return ip.Stack.Push(b)
}

func opSwap(ip *Interpreter) error {
	b, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	a, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	if err := ip.Stack.Push(b); err != nil {
		return err
	}
	return ip.Stack.Push(a)
}

// opSelect pops [a, b, cond] and pushes b if cond != 0 else a.
func opSelect(ip *Interpreter) error {
	cond, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	b, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	a, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	if cond != 0 {
		return ip.Stack.Push(b)
	}
	return ip.Stack.Push(a)
}

// constructDig builds `dig N`: duplicates the Nth-from-top stack value onto
// the top without disturbing the rest.
func constructDig(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("dig", args, 1, line); err != nil {
		return nil, err
	}
	n, err := argInt(args[0], line)
	if err != nil {
		return nil, err
	}
	return &Instruction{Name: "dig", Line: line, Exec: func(ip *Interpreter) error {
		v, err := ip.Stack.Peek(int(n))
		if err != nil {
			return err
		}
		return ip.Stack.Push(v)
	}}, nil
}
