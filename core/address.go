package core

import (
	"crypto/sha512"
	"encoding/base32"
	"errors"
)

// AddressLen is the size in bytes of the raw public key an Address wraps.
const AddressLen = 32

// checksumLen is the number of trailing checksum bytes embedded in the
// base-32 string form of an Address.
const checksumLen = 4

var b32Encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Address is a 32-byte public key with a canonical checksummed base-32
// string form.
type Address [AddressLen]byte

// ZeroAddress is the sentinel all-zero address used by `global ZeroAddress`
// and as the "unset" value for asset role addresses.
var ZeroAddress = Address{}

// Bytes returns the raw 32-byte public key.
func (a Address) Bytes() []byte { return a[:] }

// IsZero reports whether the address is the all-zero sentinel.
func (a Address) IsZero() bool { return a == ZeroAddress }

// String renders the checksummed base-32 form: base32(pubkey || checksum).
func (a Address) String() string {
	cksum := addressChecksum(a[:])
	buf := make([]byte, 0, AddressLen+checksumLen)
	buf = append(buf, a[:]...)
	buf = append(buf, cksum...)
	return b32Encoding.EncodeToString(buf)
}

// addressChecksum returns the last checksumLen bytes of sha512/256(pubkey).
func addressChecksum(pubkey []byte) []byte {
	h := sha512.Sum512_256(pubkey)
	return h[len(h)-checksumLen:]
}

// DecodeAddress parses a checksummed base-32 address string, verifying the
// embedded checksum. Used by the `addr` opcode and by account lookups.
func DecodeAddress(s string) (Address, error) {
	raw, err := b32Encoding.DecodeString(s)
	if err != nil {
		return Address{}, NewExecError(ErrInvalidAddr, err.Error())
	}
	if len(raw) != AddressLen+checksumLen {
		return Address{}, NewExecError(ErrInvalidAddr, "wrong decoded length")
	}
	var a Address
	copy(a[:], raw[:AddressLen])
	want := addressChecksum(a[:])
	got := raw[AddressLen:]
	for i := range want {
		if want[i] != got[i] {
			return Address{}, NewExecError(ErrInvalidAddr, "checksum mismatch")
		}
	}
	return a, nil
}

// AddressFromBytes wraps a raw 32-byte slice as an Address.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressLen {
		return Address{}, errors.New("address: raw key must be 32 bytes")
	}
	var a Address
	copy(a[:], b)
	return a, nil
}
