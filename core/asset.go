package core

// AssetID uniquely identifies a created standard asset (ASA). IDs are
// monotonic counters owned by the WorldState.
type AssetID uint64

// AssetHolding is a single account's position in an asset.
type AssetHolding struct {
	Amount uint64
	Frozen bool
}

// AssetParams describes an asset's immutable and role-mutable metadata.
// The four role addresses, once set non-zero, may never be reset back to
// ZeroAddress.
type AssetParams struct {
	Total         uint64
	Decimals      uint32
	DefaultFrozen bool
	UnitName      string
	AssetName     string
	URL           string
	MetadataHash  [32]byte

	Manager  Address
	Reserve  Address
	Freeze   Address
	Clawback Address
}

// clone returns a deep copy (AssetParams has no reference fields besides
// the fixed-size MetadataHash, so a value copy already suffices; the method
// exists for call-site symmetry with Account.Clone / WorldState.Clone).
func (p AssetParams) clone() AssetParams { return p }

// assertRoleNotRelocked rejects a ModifyAsset that would reset a currently
// non-zero role address back to zero.
func assertRoleNotRelocked(current, next Address) error {
	if !current.IsZero() && next.IsZero() {
		return NewExecError(ErrRoleAddressRelocked, "role address cannot be reset to zero")
	}
	return nil
}
