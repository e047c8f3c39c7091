package core

func init() {
	registerOp("global", 1, constructGlobal)
}

func constructGlobal(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("global", args, 1, line); err != nil {
		return nil, err
	}
	field := args[0]
	return &Instruction{Name: "global", Line: line, Exec: func(ip *Interpreter) error {
		v, err := resolveGlobalField(ip.Globals, ip.Version, len(ip.Group), field)
		if err != nil {
			return err
		}
		return ip.Stack.Push(v)
	}}, nil
}
