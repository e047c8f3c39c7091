package core

func init() {
	registerOp("txn", 1, constructTxn)
	registerOp("txna", 2, constructTxna)
	registerOp("gtxn", 1, constructGtxn)
	registerOp("gtxna", 2, constructGtxna)
	registerOp("gtxns", 3, constructGtxns)
	registerOp("gtxnsa", 3, constructGtxnsa)
}

func constructTxn(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("txn", args, 1, line); err != nil {
		return nil, err
	}
	field := args[0]
	return &Instruction{Name: "txn", Line: line, Exec: func(ip *Interpreter) error {
		v, err := resolveTxnField(ip.Tx, ip.Version, field)
		if err != nil {
			return err
		}
		return ip.Stack.Push(v)
	}}, nil
}

func constructTxna(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("txna", args, 2, line); err != nil {
		return nil, err
	}
	field := args[0]
	idx, err := argInt(args[1], line)
	if err != nil {
		return nil, err
	}
	return &Instruction{Name: "txna", Line: line, Exec: func(ip *Interpreter) error {
		v, err := resolveTxnArrayField(ip.Tx, ip.Version, field, idx)
		if err != nil {
			return err
		}
		return ip.Stack.Push(v)
	}}, nil
}

// groupTx resolves the transaction at position t within the current group,
// shared by gtxn/gtxna/gtxns/gtxnsa.
func groupTx(ip *Interpreter, t uint64) (*Transaction, error) {
	if t >= uint64(len(ip.Group)) {
		return nil, NewExecError(ErrIndexOutOfBound, "group transaction index")
	}
	return ip.Group[t], nil
}

func constructGtxn(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("gtxn", args, 2, line); err != nil {
		return nil, err
	}
	t, err := argInt(args[0], line)
	if err != nil {
		return nil, err
	}
	field := args[1]
	return &Instruction{Name: "gtxn", Line: line, Exec: func(ip *Interpreter) error {
		tx, err := groupTx(ip, t)
		if err != nil {
			return err
		}
		v, err := resolveTxnField(tx, ip.Version, field)
		if err != nil {
			return err
		}
		return ip.Stack.Push(v)
	}}, nil
}

func constructGtxna(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("gtxna", args, 3, line); err != nil {
		return nil, err
	}
	t, err := argInt(args[0], line)
	if err != nil {
		return nil, err
	}
	field := args[1]
	idx, err := argInt(args[2], line)
	if err != nil {
		return nil, err
	}
	return &Instruction{Name: "gtxna", Line: line, Exec: func(ip *Interpreter) error {
		tx, err := groupTx(ip, t)
		if err != nil {
			return err
		}
		v, err := resolveTxnArrayField(tx, ip.Version, field, idx)
		if err != nil {
			return err
		}
		return ip.Stack.Push(v)
	}}, nil
}

// constructGtxns builds `gtxns NAME`: like gtxn but the group index comes
// off the stack rather than as an immediate.
func constructGtxns(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("gtxns", args, 1, line); err != nil {
		return nil, err
	}
	field := args[0]
	return &Instruction{Name: "gtxns", Line: line, Exec: func(ip *Interpreter) error {
		t, err := ip.Stack.PopUint64()
		if err != nil {
			return err
		}
		tx, err := groupTx(ip, t)
		if err != nil {
			return err
		}
		v, err := resolveTxnField(tx, ip.Version, field)
		if err != nil {
			return err
		}
		return ip.Stack.Push(v)
	}}, nil
}

func constructGtxnsa(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("gtxnsa", args, 2, line); err != nil {
		return nil, err
	}
	field := args[0]
	idx, err := argInt(args[1], line)
	if err != nil {
		return nil, err
	}
	return &Instruction{Name: "gtxnsa", Line: line, Exec: func(ip *Interpreter) error {
		t, err := ip.Stack.PopUint64()
		if err != nil {
			return err
		}
		tx, err := groupTx(ip, t)
		if err != nil {
			return err
		}
		v, err := resolveTxnArrayField(tx, ip.Version, field, idx)
		if err != nil {
			return err
		}
		return ip.Stack.Push(v)
	}}, nil
}
