package core_test

import (
	"testing"

	core "github.com/synnergy-labs/scl-runtime/core"
)

func TestAddressRoundTrip(t *testing.T) {
	var raw [core.AddressLen]byte
	for i := range raw {
		raw[i] = byte(i)
	}
	addr, err := core.AddressFromBytes(raw[:])
	if err != nil {
		t.Fatalf("AddressFromBytes: %v", err)
	}
	s := addr.String()
	got, err := core.DecodeAddress(s)
	if err != nil {
		t.Fatalf("DecodeAddress: %v", err)
	}
	if got != addr {
		t.Fatalf("round-trip mismatch: got %v want %v", got, addr)
	}
}

func TestDecodeAddressRejectsBadChecksum(t *testing.T) {
	var raw [core.AddressLen]byte
	addr, _ := core.AddressFromBytes(raw[:])
	s := addr.String()
	corrupted := []byte(s)
	corrupted[0]++
	if _, err := core.DecodeAddress(string(corrupted)); err == nil {
		t.Fatal("expected checksum mismatch error")
	}
}

func TestZeroAddressIsZero(t *testing.T) {
	if !core.ZeroAddress.IsZero() {
		t.Fatal("ZeroAddress.IsZero() should be true")
	}
}
