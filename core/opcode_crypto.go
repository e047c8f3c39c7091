package core

import (
	"crypto/sha256"
	"crypto/sha512"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/ed25519"
)

func init() {
	registerOp("sha256", 1, simple("sha256", opSha256))
	registerOp("sha512_256", 1, simple("sha512_256", opSha512_256))
	registerOp("keccak256", 1, simple("keccak256", opKeccak256))
	registerOp("ed25519verify", 1, simple("ed25519verify", opEd25519Verify))
}

func opSha256(ip *Interpreter) error {
	b, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	sum := sha256.Sum256(b)
	return ip.Stack.PushBytes(sum[:])
}

func opSha512_256(ip *Interpreter) error {
	b, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	sum := sha512.Sum512_256(b)
	return ip.Stack.PushBytes(sum[:])
}

// opKeccak256 uses go-ethereum's Keccak256, the non-NIST variant of the
// hash Ethereum tooling standardizes on (distinct from SHA3-256).
func opKeccak256(ip *Interpreter) error {
	b, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	sum := crypto.Keccak256(b)
	return ip.Stack.PushBytes(sum)
}

// opEd25519Verify pops [data, signature, pubkey] and pushes 1 if signature
// verifies under pubkey over the domain-separated message
// "ProgData" || program-hash || data, else 0. Verification failure is a
// stack result, not a fatal error.
func opEd25519Verify(ip *Interpreter) error {
	pubkey, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	sig, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	data, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	if len(pubkey) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return ip.Stack.PushUint64(0)
	}
	progHash := sha256.Sum256(ip.Program.Source)
	msg := make([]byte, 0, len("ProgData")+len(progHash)+len(data))
	msg = append(msg, "ProgData"...)
	msg = append(msg, progHash[:]...)
	msg = append(msg, data...)
	if ed25519.Verify(ed25519.PublicKey(pubkey), msg, sig) {
		return ip.Stack.PushUint64(1)
	}
	return ip.Stack.PushUint64(0)
}
