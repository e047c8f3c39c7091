package core

import "github.com/sirupsen/logrus"

// Mode distinguishes stateless logic-signature execution from stateful
// application execution.
type Mode uint8

const (
	ModeStateless Mode = iota
	ModeStateful
)

// Default per-opcode cost budgets: a flat per-opcode cost of 1 against a
// budget of 700 for stateless execution and 20000 for stateful execution.
const (
	StatelessCostBudget uint64 = 700
	StatefulCostBudget  uint64 = 20000
)

// MaxTEALVersion is the highest pragma version this runtime assembles.
const MaxTEALVersion = 6

// Interpreter orchestrates opcode execution for one program run: fetch,
// dispatch, instruction pointer, branch resolution, scratch, const blocks,
// version gating.
type Interpreter struct {
	Program     *Program
	Stack       Stack
	Scratch     [ScratchSize]Value
	IntC        []uint64
	ByteC       [][]byte
	Mode        Mode
	Version     int
	CostUsed    uint64
	CostBudget  uint64

	ip       int
	returned bool

	Tx      *Transaction
	Group   []*Transaction
	Globals *Globals
	Engine  *Ctx // nil when run outside a transaction group (e.g. pure unit tests)
}

// NewInterpreter builds an interpreter ready to run prog in the given mode.
func NewInterpreter(prog *Program, mode Mode, tx *Transaction, group []*Transaction, globals *Globals, engine *Ctx) *Interpreter {
	budget := StatelessCostBudget
	if mode == ModeStateful {
		budget = StatefulCostBudget
	}
	return &Interpreter{
		Program:    prog,
		Mode:       mode,
		Version:    prog.Version,
		CostBudget: budget,
		Tx:         tx,
		Group:      group,
		Globals:    globals,
		Engine:     engine,
	}
}

// Run executes the program to termination and applies the acceptance rule:
// the stack must end with exactly one value, and it must be a nonzero
// Uint64; otherwise the program is rejected.
func (ip *Interpreter) Run() (accepted bool, err error) {
	instrs := ip.Program.Instructions
	for ip.ip < len(instrs) {
		inst := instrs[ip.ip]
		ip.ip++
		if inst.Label != "" {
			continue // label pseudo-instructions are no-ops at execution time
		}
		ip.CostUsed += CostOf(inst.Name)
		if ip.CostUsed > ip.CostBudget {
			return false, NewLineError(ErrOutOfCostBudget, inst.Line, inst.Name)
		}
		if err := inst.Exec(ip); err != nil {
			if ee, ok := err.(*ExecError); ok && ee.Line == 0 {
				ee.Line = inst.Line
			}
			logrus.WithFields(logrus.Fields{
				"opcode": inst.Name,
				"line":   inst.Line,
			}).Debug("scl: instruction rejected")
			return false, err
		}
		if ip.returned {
			break
		}
	}
	if ip.Stack.Len() != 1 {
		return false, NewExecError(ErrAssertStackLength, "program must terminate with exactly one stack value")
	}
	top, _ := ip.Stack.Peek(0)
	if !top.AsBool() {
		return false, NewExecError(ErrRejectedByLogic, "top of stack is zero or bytes")
	}
	return true, nil
}

// jumpToLabel resolves a branch target by linear scan, failing fatally if
// the label is not present in the program.
func (ip *Interpreter) jumpToLabel(label string) error {
	for i, inst := range ip.Program.Instructions {
		if inst.Label == label {
			ip.ip = i
			return nil
		}
	}
	return NewExecError(ErrInvalidOpArg, "unresolved label: "+label)
}
