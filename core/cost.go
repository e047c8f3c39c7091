package core

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultOpCost is charged for any opcode that has slipped through the
// cracks of costTable. Every real opcode is priced at 1, so hitting this
// path means a new opcode was registered without a cost entry.
const DefaultOpCost uint64 = 1

// costTable maps every opcode mnemonic to its per-execution cost. The whole
// instruction set is priced uniformly at 1; the table exists so a future
// differentiated cost schedule has a single place to live.
var costTable = map[string]uint64{}

var warnedUnpriced sync.Map

// CostOf returns the cost of executing the named opcode, logging the first
// occurrence of any opcode missing from costTable.
func CostOf(name string) uint64 {
	if cost, ok := costTable[name]; ok {
		return cost
	}
	if _, already := warnedUnpriced.LoadOrStore(name, struct{}{}); !already {
		logrus.WithField("opcode", name).Warn("scl: missing cost entry, charging default")
	}
	return DefaultOpCost
}
