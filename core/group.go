package core

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/google/uuid"
)

// MaxGroupSize bounds an atomic transaction group.
const MaxGroupSize = 16

// AssignGroup fills in GroupIndex (and a TxID where none is set) on every
// transaction, rejects groups larger than MaxGroupSize, and, whenever the
// group has more than one transaction, computes and stores a deterministic
// group identifier into every transaction's Group field.
//
// The digest is a sha256 over each transaction's sender, type and a
// monotonically increasing position.
func AssignGroup(txs []*Transaction) error {
	if len(txs) > MaxGroupSize {
		return NewExecError(ErrGroupSizeExceeded, "")
	}
	for i, tx := range txs {
		tx.GroupIndex = i
		tx.groupSize = len(txs)
		if tx.TxID == "" {
			tx.TxID = uuid.NewString()
		}
	}
	if len(txs) <= 1 {
		return nil
	}

	h := sha256.New()
	for i, tx := range txs {
		h.Write(tx.Sender.Bytes())
		h.Write([]byte(tx.Type))
		var idxBuf [8]byte
		binary.BigEndian.PutUint64(idxBuf[:], uint64(i))
		h.Write(idxBuf[:])
	}
	digest := h.Sum(nil)

	var grp [32]byte
	copy(grp[:], digest)
	for _, tx := range txs {
		tx.Group = grp
	}
	return nil
}
