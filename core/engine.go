package core

import "github.com/sirupsen/logrus"

// Ctx is the transient execution context for one transaction group: a
// deep-copied WorldState that every transaction in the group mutates in
// place, discarded on any failure and only merged back into the caller's
// WorldState once the whole group accepts.
type Ctx struct {
	World   *WorldState
	Globals *Globals
}

// ResolveAccount maps a `txn Accounts`-style index to an address: 0 is
// always the sender, 1..N index the transaction's Accounts array.
func (c *Ctx) ResolveAccount(tx *Transaction, idx uint64) (Address, error) {
	if idx == 0 {
		return tx.Sender, nil
	}
	i := idx - 1
	if i >= uint64(len(tx.Accounts)) {
		return Address{}, NewExecError(ErrIndexOutOfBound, "account index")
	}
	return tx.Accounts[i], nil
}

// ResolveApp maps a `txn Applications`-style index to an app id: 0 is
// always the transaction's own ApplicationID, 1..N index ForeignApps.
func (c *Ctx) ResolveApp(tx *Transaction, idx uint64) (AppID, error) {
	if idx == 0 {
		return tx.ApplicationID, nil
	}
	i := idx - 1
	if i >= uint64(len(tx.ForeignApps)) {
		return 0, NewExecError(ErrIndexOutOfBound, "application index")
	}
	return tx.ForeignApps[i], nil
}

// ResolveAsset maps a `txn Assets`-style index directly into ForeignAssets;
// unlike accounts/applications there is no implicit index-0 entry.
func (c *Ctx) ResolveAsset(tx *Transaction, idx uint64) (AssetID, error) {
	if idx >= uint64(len(tx.ForeignAssets)) {
		return 0, NewExecError(ErrIndexOutOfBound, "asset index")
	}
	return tx.ForeignAssets[idx], nil
}

// TxResult reports the outcome of executing a single transaction within a
// group: whether it (and therefore the whole group) is accepted, and the
// transaction's TxID.
type TxResult struct {
	Accepted bool
	TxID     string
}

// ExecuteGroup runs an entire transaction group against ws atomically: a
// deep copy absorbs every mutation, and the copy replaces ws only if every
// transaction accepts; any rejection discards the copy and leaves ws
// untouched.
func ExecuteGroup(ws *WorldState, txs []*Transaction, globals *Globals) ([]TxResult, error) {
	if len(txs) == 0 {
		return nil, NewExecError(ErrInvalidTxParams, "empty group")
	}
	if err := AssignGroup(txs); err != nil {
		return nil, err
	}

	transient := ws.Clone()
	eng := &Ctx{World: transient, Globals: globals}

	results := make([]TxResult, len(txs))
	for i, tx := range txs {
		accepted, err := eng.executeOne(tx, txs)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"index": i,
				"type":  tx.Type,
				"err":   err.Error(),
			}).Debug("scl: group rejected")
			return nil, err
		}
		if !accepted {
			return nil, NewExecError(ErrRejectedByLogic, "transaction rejected within group")
		}
		results[i] = TxResult{Accepted: true, TxID: tx.TxID}
	}

	if err := transient.CheckInvariants(); err != nil {
		return nil, err
	}

	*ws = *transient
	return results, nil
}

// executeOne runs the pre-flight checks, fee deduction and per-type
// dispatch for a single transaction against the transient world state.
// Every failure, including a program's logic rejection, is reported as a
// non-nil error.
func (c *Ctx) executeOne(tx *Transaction, group []*Transaction) (bool, error) {
	sender, err := c.World.Account(tx.Sender)
	if err != nil {
		return false, err
	}

	if err := c.authorize(tx, group); err != nil {
		return false, err
	}

	if tx.Fee > sender.Balance {
		return false, NewExecError(ErrInsufficientBalance, "fee")
	}
	if c.Globals != nil && tx.Fee < c.Globals.MinTxnFee {
		return false, NewExecError(ErrInvalidTxParams, "fee below MinTxnFee")
	}
	sender.Balance -= tx.Fee

	switch tx.Type {
	case TxPay:
		return true, c.execPay(tx)
	case TxKeyReg:
		return true, nil // key registration carries no world-state side effect in this runtime
	case TxAcfg:
		return true, c.execAssetConfig(tx)
	case TxAxfer:
		return true, c.execAssetTransfer(tx)
	case TxAfrz:
		return true, c.execAssetFreeze(tx)
	case TxAppl:
		return c.execAppCall(tx, group)
	default:
		return false, NewExecError(ErrInvalidTxParams, "unknown transaction type")
	}
}

// authorize verifies exactly one of SecretKeySigned or LogicSig is set, and
// runs the logic signature (if any) in stateless mode.
func (c *Ctx) authorize(tx *Transaction, group []*Transaction) error {
	hasKey := tx.SecretKeySigned
	hasLogicSig := tx.LogicSig != nil
	if hasKey == hasLogicSig {
		return NewExecError(ErrAmbiguousSigning, "exactly one of key signature or logic signature required")
	}
	if !hasLogicSig {
		return nil
	}
	accepted, err := RunStateless(tx.LogicSig, tx, group, c.Globals)
	if err != nil {
		return err
	}
	if !accepted {
		return NewExecError(ErrRejectedByLogic, "logic signature rejected")
	}
	return nil
}

func (c *Ctx) execPay(tx *Transaction) error {
	sender, err := c.World.Account(tx.Sender)
	if err != nil {
		return err
	}
	if tx.Amount > sender.Balance {
		return NewExecError(ErrInsufficientBalance, "amount")
	}
	receiver := c.World.EnsureAccount(tx.Receiver)
	sender.Balance -= tx.Amount
	receiver.Balance += tx.Amount

	if tx.CloseRemainder != nil {
		remainder := sender.Balance
		sender.Balance = 0
		closeTo := c.World.EnsureAccount(*tx.CloseRemainder)
		closeTo.Balance += remainder
		if sender.Empty() {
			delete(c.World.Accounts, tx.Sender)
		}
	}
	return nil
}
