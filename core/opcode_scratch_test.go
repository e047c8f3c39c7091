package core_test

import "testing"

func TestStoreLoadRoundTrip(t *testing.T) {
	if !runExpr(t, "int 99\nstore 5\nload 5\nint 99\n==\n") {
		t.Fatal("expected store/load round-trip through scratch slot 5")
	}
}

func TestLoadDefaultsToZeroValue(t *testing.T) {
	if runExpr(t, "load 7\n") {
		t.Fatal("expected an unwritten scratch slot to default to a falsy zero Uint64")
	}
}
