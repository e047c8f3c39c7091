package core

import (
	"crypto/sha256"

	"golang.org/x/crypto/ed25519"
)

// LogicSig carries the stateless program and its authorization for a
// transaction signed by a logic signature rather than a secret key:
// delegated mode authenticates the program via an ed25519 signature from
// the sender's key, contract mode authenticates it by the sender address
// matching the program's derived address.
type LogicSig struct {
	Program string // SCL source text

	// Delegated mode.
	Delegated bool
	PublicKey ed25519.PublicKey
	Signature []byte

	// A LogicSig carries no program arguments: its program can read only
	// the transaction, its group and the globals.
}

// Sign authenticates this logic signature in delegated mode: it signs the
// program's source-text bytes under sk and records the matching public key.
func (ls *LogicSig) Sign(sk ed25519.PrivateKey) {
	ls.Delegated = true
	ls.PublicKey = sk.Public().(ed25519.PublicKey)
	ls.Signature = ed25519.Sign(sk, []byte(ls.Program))
}

// DeriveLogicSigAddress computes the contract-mode address of a program:
// sha256(program bytes), taking the full 32-byte digest as the address.
func DeriveLogicSigAddress(program []byte) Address {
	h := sha256.Sum256(program)
	var out Address
	copy(out[:], h[:])
	return out
}

// Verify authenticates a LogicSig against the transaction it authorizes,
// choosing delegated or contract mode by the Delegated flag.
func (ls *LogicSig) Verify(sender Address) error {
	progBytes := []byte(ls.Program)
	if ls.Delegated {
		if len(ls.PublicKey) != ed25519.PublicKeySize || len(ls.Signature) != ed25519.SignatureSize {
			return NewExecError(ErrLogicSigValidation, "malformed delegated signature")
		}
		pkAddr, err := AddressFromBytes(ls.PublicKey)
		if err != nil || pkAddr != sender {
			return NewExecError(ErrLogicSigValidation, "public key does not match sender")
		}
		if !ed25519.Verify(ls.PublicKey, progBytes, ls.Signature) {
			return NewExecError(ErrLogicSigValidation, "signature verification failed")
		}
		return nil
	}
	if DeriveLogicSigAddress(progBytes) != sender {
		return NewExecError(ErrLogicSigValidation, "sender does not match contract-mode address")
	}
	return nil
}

// RunStateless assembles and executes a logic signature's program in
// stateless mode, forbidding app-state opcodes by construction (Ctx is
// always nil for this call, and requireEngine() rejects any op that needs
// one) and verifies authorization first.
func RunStateless(ls *LogicSig, tx *Transaction, group []*Transaction, globals *Globals) (bool, error) {
	if err := ls.Verify(tx.Sender); err != nil {
		return false, err
	}
	prog, err := Assemble(ls.Program)
	if err != nil {
		return false, err
	}
	ip := NewInterpreter(prog, ModeStateless, tx, group, globals, nil)
	return ip.Run()
}
