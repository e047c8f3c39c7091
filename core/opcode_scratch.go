package core

func init() {
	registerOp("store", 1, constructStore)
	registerOp("load", 1, constructLoad)
}

// constructStore builds `store N`: pops the top of stack into scratch slot N
// (ScratchSize slots total).
func constructStore(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("store", args, 1, line); err != nil {
		return nil, err
	}
	idx, err := argInt(args[0], line)
	if err != nil {
		return nil, err
	}
	if idx >= ScratchSize {
		return nil, NewLineError(ErrIndexOutOfBound, line, "store slot out of range")
	}
	return &Instruction{Name: "store", Line: line, Exec: func(ip *Interpreter) error {
		v, err := ip.Stack.Pop()
		if err != nil {
			return err
		}
		ip.Scratch[idx] = v
		return nil
	}}, nil
}

func constructLoad(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("load", args, 1, line); err != nil {
		return nil, err
	}
	idx, err := argInt(args[0], line)
	if err != nil {
		return nil, err
	}
	if idx >= ScratchSize {
		return nil, NewLineError(ErrIndexOutOfBound, line, "load slot out of range")
	}
	return &Instruction{Name: "load", Line: line, Exec: func(ip *Interpreter) error {
		return ip.Stack.Push(ip.Scratch[idx])
	}}, nil
}
