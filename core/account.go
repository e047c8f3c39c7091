package core

// Minimum-balance constants.
const (
	MinBalanceBase       uint64 = 10_000
	MinBalancePerAsset    uint64 = 10_000
	MinBalancePerAppOptin uint64 = 10_000
	// MinBalancePerSchemaUnit approximates the on-chain schema surcharge:
	// charged per declared uint/byte-slice slot in an app's local schema
	// for every account opted into it.
	MinBalancePerSchemaUnit uint64 = 25_000 / 10 // 2,500 micro-units/slot

	MaxCreatedApps   = 10
	MaxOptedInApps   = 10
	MaxCreatedAssets = 1000
)

// Account holds everything attached to one address: native balance, asset
// holdings, local app state/opt-ins, and (only for the creator) the apps
// and assets it created.
type Account struct {
	Address Address
	Balance uint64

	Holdings    map[AssetID]AssetHolding
	LocalStates map[AppID]LocalAppState

	CreatedApps   map[AppID]*AppAttributes
	CreatedAssets map[AssetID]*AssetParams
}

// NewAccount returns an Account with the given address, balance and empty
// maps, ready to participate in transactions.
func NewAccount(addr Address, balance uint64) *Account {
	return &Account{
		Address:       addr,
		Balance:       balance,
		Holdings:      make(map[AssetID]AssetHolding),
		LocalStates:   make(map[AppID]LocalAppState),
		CreatedApps:   make(map[AppID]*AppAttributes),
		CreatedAssets: make(map[AssetID]*AssetParams),
	}
}

// Clone returns a deep copy, used when the engine snapshots WorldState into
// a transient context before applying a transaction group.
func (a *Account) Clone() *Account {
	out := &Account{Address: a.Address, Balance: a.Balance}

	out.Holdings = make(map[AssetID]AssetHolding, len(a.Holdings))
	for id, h := range a.Holdings {
		out.Holdings[id] = h
	}

	out.LocalStates = make(map[AppID]LocalAppState, len(a.LocalStates))
	for id, s := range a.LocalStates {
		out.LocalStates[id] = s.clone()
	}

	out.CreatedApps = make(map[AppID]*AppAttributes, len(a.CreatedApps))
	for id, app := range a.CreatedApps {
		cp := app.clone()
		out.CreatedApps[id] = &cp
	}

	out.CreatedAssets = make(map[AssetID]*AssetParams, len(a.CreatedAssets))
	for id, ap := range a.CreatedAssets {
		cp := ap.clone()
		out.CreatedAssets[id] = &cp
	}

	return out
}

// MinBalance computes the account's minimum-balance requirement: base +
// per opted-in asset + per-app local-schema surcharge.
func (a *Account) MinBalance() uint64 {
	total := MinBalanceBase
	total += uint64(len(a.Holdings)) * MinBalancePerAsset
	for _, ls := range a.LocalStates {
		total += MinBalancePerAppOptin
		total += ls.Schema.NumUint * MinBalancePerSchemaUnit
		total += ls.Schema.NumByteSlice * MinBalancePerSchemaUnit
	}
	return total
}

// Empty reports whether the account carries no balance and no state of any
// kind, i.e. it is safe to drop from WorldState.Accounts entirely.
func (a *Account) Empty() bool {
	return a.Balance == 0 &&
		len(a.Holdings) == 0 &&
		len(a.LocalStates) == 0 &&
		len(a.CreatedApps) == 0 &&
		len(a.CreatedAssets) == 0
}

// OptedInAsset reports whether the account holds (has opted into) asset id.
func (a *Account) OptedInAsset(id AssetID) bool {
	_, ok := a.Holdings[id]
	return ok
}

// OptedInApp reports whether the account has local state for app id.
func (a *Account) OptedInApp(id AppID) bool {
	_, ok := a.LocalStates[id]
	return ok
}
