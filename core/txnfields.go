package core

// txnField describes one resolvable `txn`/`gtxn` field: how to pull a Value
// out of a Transaction, whether it is array-valued, and from which pragma
// version it is available.
type txnField struct {
	minVersion int
	isArray    bool
	scalar     func(tx *Transaction) Value
	array      func(tx *Transaction, idx uint64) (Value, error)
	arrayLen   func(tx *Transaction) uint64
}

var txnFieldTable map[string]txnField

func init() {
	txnFieldTable = map[string]txnField{
		"Sender":         {minVersion: 1, scalar: func(tx *Transaction) Value { return BytesValue(tx.Sender.Bytes()) }},
		"Fee":            {minVersion: 1, scalar: func(tx *Transaction) Value { return Uint64Value(tx.Fee) }},
		"FirstValid":     {minVersion: 1, scalar: func(tx *Transaction) Value { return Uint64Value(tx.FirstValid) }},
		"LastValid":      {minVersion: 1, scalar: func(tx *Transaction) Value { return Uint64Value(tx.LastValid) }},
		"Note":           {minVersion: 1, scalar: func(tx *Transaction) Value { return BytesValue(tx.Note) }},
		"Lease":          {minVersion: 1, scalar: func(tx *Transaction) Value { return BytesValue(tx.Lease[:]) }},
		"Receiver":       {minVersion: 1, scalar: func(tx *Transaction) Value { return BytesValue(tx.Receiver.Bytes()) }},
		"Amount":         {minVersion: 1, scalar: func(tx *Transaction) Value { return Uint64Value(tx.Amount) }},
		"CloseRemainderTo": {minVersion: 1, scalar: func(tx *Transaction) Value {
			if tx.CloseRemainder == nil {
				return BytesValue(ZeroAddress.Bytes())
			}
			return BytesValue(tx.CloseRemainder.Bytes())
		}},
		"VotePK":          {minVersion: 1, scalar: func(tx *Transaction) Value { return BytesValue(tx.VoteKey[:]) }},
		"SelectionPK":     {minVersion: 1, scalar: func(tx *Transaction) Value { return BytesValue(tx.SelectionKey[:]) }},
		"VoteFirst":       {minVersion: 1, scalar: func(tx *Transaction) Value { return Uint64Value(tx.VoteFirst) }},
		"VoteLast":        {minVersion: 1, scalar: func(tx *Transaction) Value { return Uint64Value(tx.VoteLast) }},
		"VoteKeyDilution": {minVersion: 1, scalar: func(tx *Transaction) Value { return Uint64Value(tx.VoteKeyDilution) }},
		"Type":            {minVersion: 1, scalar: func(tx *Transaction) Value { return BytesValue([]byte(tx.Type)) }},
		"TypeEnum":        {minVersion: 1, scalar: func(tx *Transaction) Value { return Uint64Value(tx.Type.TypeEnum()) }},
		"XferAsset":       {minVersion: 2, scalar: func(tx *Transaction) Value { return Uint64Value(uint64(tx.XferAsset)) }},
		"AssetAmount":     {minVersion: 2, scalar: func(tx *Transaction) Value { return Uint64Value(tx.AssetAmount) }},
		"AssetSender":     {minVersion: 2, scalar: func(tx *Transaction) Value { return BytesValue(tx.AssetSender.Bytes()) }},
		"AssetReceiver":   {minVersion: 2, scalar: func(tx *Transaction) Value { return BytesValue(tx.AssetReceiver.Bytes()) }},
		"AssetCloseTo": {minVersion: 2, scalar: func(tx *Transaction) Value {
			if tx.AssetCloseTo == nil {
				return BytesValue(ZeroAddress.Bytes())
			}
			return BytesValue(tx.AssetCloseTo.Bytes())
		}},
		"GroupIndex":      {minVersion: 1, scalar: func(tx *Transaction) Value { return Uint64Value(uint64(tx.GroupIndex)) }},
		"TxID":            {minVersion: 1, scalar: func(tx *Transaction) Value { return BytesValue([]byte(tx.TxID)) }},
		"ApplicationID":   {minVersion: 2, scalar: func(tx *Transaction) Value { return Uint64Value(uint64(tx.ApplicationID)) }},
		"OnCompletion":    {minVersion: 2, scalar: func(tx *Transaction) Value { return Uint64Value(uint64(tx.OnCompletion)) }},
		"ApprovalProgram": {minVersion: 2, scalar: func(tx *Transaction) Value { return BytesValue([]byte(tx.ApprovalProgram)) }},
		"ClearStateProgram": {minVersion: 2, scalar: func(tx *Transaction) Value { return BytesValue([]byte(tx.ClearProgram)) }},
		"RekeyTo":         {minVersion: 2, scalar: func(tx *Transaction) Value { return BytesValue(tx.RekeyTo.Bytes()) }},
		"ConfigAsset":     {minVersion: 2, scalar: func(tx *Transaction) Value { return Uint64Value(uint64(tx.ConfigAsset)) }},
		"FreezeAsset":     {minVersion: 2, scalar: func(tx *Transaction) Value { return Uint64Value(uint64(tx.FreezeAsset)) }},
		"FreezeAssetAccount": {minVersion: 2, scalar: func(tx *Transaction) Value { return BytesValue(tx.FreezeAccount.Bytes()) }},
		"FreezeAssetFrozen": {minVersion: 2, scalar: func(tx *Transaction) Value { return boolValue(tx.AssetFrozen) }},

		// FirstValidTime is reserved and always fails.
		"FirstValidTime": {minVersion: 1, scalar: nil},

		"ApplicationArgs": {
			minVersion: 2, isArray: true,
			array: func(tx *Transaction, idx uint64) (Value, error) {
				if idx >= uint64(len(tx.ApplicationArgs)) {
					return Value{}, NewExecError(ErrIndexOutOfBound, "ApplicationArgs")
				}
				return BytesValue(tx.ApplicationArgs[idx]), nil
			},
			arrayLen: func(tx *Transaction) uint64 { return uint64(len(tx.ApplicationArgs)) },
		},
		"Accounts": {
			minVersion: 2, isArray: true,
			array: func(tx *Transaction, idx uint64) (Value, error) {
				if idx == 0 {
					return BytesValue(tx.Sender.Bytes()), nil
				}
				i := idx - 1
				if i >= uint64(len(tx.Accounts)) {
					return Value{}, NewExecError(ErrIndexOutOfBound, "Accounts")
				}
				return BytesValue(tx.Accounts[i].Bytes()), nil
			},
			arrayLen: func(tx *Transaction) uint64 { return uint64(len(tx.Accounts)) + 1 },
		},
		"Applications": {
			minVersion: 3, isArray: true,
			array: func(tx *Transaction, idx uint64) (Value, error) {
				if idx == 0 {
					return Uint64Value(uint64(tx.ApplicationID)), nil
				}
				i := idx - 1
				if i >= uint64(len(tx.ForeignApps)) {
					return Value{}, NewExecError(ErrIndexOutOfBound, "Applications")
				}
				return Uint64Value(uint64(tx.ForeignApps[i])), nil
			},
			arrayLen: func(tx *Transaction) uint64 { return uint64(len(tx.ForeignApps)) + 1 },
		},
		"Assets": {
			minVersion: 3, isArray: true,
			array: func(tx *Transaction, idx uint64) (Value, error) {
				if idx >= uint64(len(tx.ForeignAssets)) {
					return Value{}, NewExecError(ErrIndexOutOfBound, "Assets")
				}
				return Uint64Value(uint64(tx.ForeignAssets[idx])), nil
			},
			arrayLen: func(tx *Transaction) uint64 { return uint64(len(tx.ForeignAssets)) },
		},
	}
}

func boolValue(b bool) Value {
	if b {
		return Uint64Value(1)
	}
	return Uint64Value(0)
}

// resolveTxnField resolves a scalar txn field by name.
func resolveTxnField(tx *Transaction, version int, name string) (Value, error) {
	f, ok := txnFieldTable[name]
	if !ok {
		return Value{}, NewExecError(ErrUnknownTxField, name)
	}
	if name == "FirstValidTime" {
		return Value{}, NewExecError(ErrUnknownTxField, "FirstValidTime is reserved")
	}
	if version < f.minVersion {
		return Value{}, NewExecError(ErrOpcodeVersionGated, name)
	}
	if f.isArray || f.scalar == nil {
		return Value{}, NewExecError(ErrInvalidFieldType, name+" is array-valued; use txna")
	}
	return f.scalar(tx), nil
}

// resolveTxnArrayField resolves an indexed array txn field by name.
func resolveTxnArrayField(tx *Transaction, version int, name string, idx uint64) (Value, error) {
	f, ok := txnFieldTable[name]
	if !ok {
		return Value{}, NewExecError(ErrUnknownTxField, name)
	}
	if version < f.minVersion {
		return Value{}, NewExecError(ErrOpcodeVersionGated, name)
	}
	if !f.isArray {
		return Value{}, NewExecError(ErrInvalidFieldType, name+" is scalar; use txn")
	}
	return f.array(tx, idx)
}

// globalField enumerates `global` opcode field names.
type globalField struct {
	minVersion int
	resolve    func(g *Globals, groupSize int) Value
}

// Globals holds the caller-injected clock and network constants exposed via
// `global`, letting callers inject a round/timestamp for deterministic
// execution.
type Globals struct {
	MinTxnFee       uint64
	MinBalance      uint64
	MaxTxnLife      uint64
	LogicSigVersion uint64
	Round           uint64
	LatestTimestamp uint64

	// CurrentAppID and CreatorAddress are set by the engine immediately
	// before running a stateful program (app_lifecycle.go); zero outside
	// app execution.
	CurrentAppID   AppID
	CreatorAddress Address
}

var globalFieldTable = map[string]globalField{
	"MinTxnFee":             {1, func(g *Globals, gs int) Value { return Uint64Value(g.MinTxnFee) }},
	"MinBalance":            {1, func(g *Globals, gs int) Value { return Uint64Value(g.MinBalance) }},
	"MaxTxnLife":            {1, func(g *Globals, gs int) Value { return Uint64Value(g.MaxTxnLife) }},
	"ZeroAddress":           {1, func(g *Globals, gs int) Value { return BytesValue(ZeroAddress.Bytes()) }},
	"GroupSize":             {1, func(g *Globals, gs int) Value { return Uint64Value(uint64(gs)) }},
	"LogicSigVersion":       {1, func(g *Globals, gs int) Value { return Uint64Value(g.LogicSigVersion) }},
	"Round":                 {1, func(g *Globals, gs int) Value { return Uint64Value(g.Round) }},
	"LatestTimestamp":       {1, func(g *Globals, gs int) Value { return Uint64Value(g.LatestTimestamp) }},
	"CurrentApplicationID":  {2, func(g *Globals, gs int) Value { return Uint64Value(uint64(g.CurrentAppID)) }},
	"CreatorAddress":        {3, func(g *Globals, gs int) Value { return BytesValue(g.CreatorAddress.Bytes()) }},
}

func resolveGlobalField(g *Globals, version int, groupSize int, name string) (Value, error) {
	f, ok := globalFieldTable[name]
	if !ok {
		return Value{}, NewExecError(ErrUnknownGlobalField, name)
	}
	if version < f.minVersion {
		return Value{}, NewExecError(ErrOpcodeVersionGated, name)
	}
	return f.resolve(g, groupSize), nil
}
