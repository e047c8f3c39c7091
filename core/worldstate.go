package core

import "sort"

// WorldState is the synthetic chain state the runtime executes against:
// address→account, app-id→creator, asset-id→creator. App/asset identifiers
// are monotonic counters the WorldState owns.
type WorldState struct {
	Accounts map[Address]*Account
	Apps     map[AppID]Address
	Assets   map[AssetID]Address

	nextAppID   AppID
	nextAssetID AssetID
}

// NewWorldState returns an empty world state with the given accounts
// pre-populated.
func NewWorldState(accounts []*Account) *WorldState {
	ws := &WorldState{
		Accounts: make(map[Address]*Account, len(accounts)),
		Apps:     make(map[AppID]Address),
		Assets:   make(map[AssetID]Address),
	}
	for _, a := range accounts {
		ws.Accounts[a.Address] = a
	}
	return ws
}

// Clone performs a full deep copy, used to build the engine's transient
// context for a transaction group.
func (ws *WorldState) Clone() *WorldState {
	out := &WorldState{
		Accounts:    make(map[Address]*Account, len(ws.Accounts)),
		Apps:        make(map[AppID]Address, len(ws.Apps)),
		Assets:      make(map[AssetID]Address, len(ws.Assets)),
		nextAppID:   ws.nextAppID,
		nextAssetID: ws.nextAssetID,
	}
	for addr, acc := range ws.Accounts {
		out.Accounts[addr] = acc.Clone()
	}
	for id, creator := range ws.Apps {
		out.Apps[id] = creator
	}
	for id, creator := range ws.Assets {
		out.Assets[id] = creator
	}
	return out
}

// Account looks up an account by address, failing with ACCOUNT_DOES_NOT_EXIST
// if it has never been registered in this world state.
func (ws *WorldState) Account(addr Address) (*Account, error) {
	acc, ok := ws.Accounts[addr]
	if !ok {
		return nil, NewExecError(ErrAccountDoesNotExist, addr.String())
	}
	return acc, nil
}

// EnsureAccount returns the account at addr, creating a zero-balance one if
// absent. Used for transfer recipients that are known to the caller but not
// yet tracked.
func (ws *WorldState) EnsureAccount(addr Address) *Account {
	if acc, ok := ws.Accounts[addr]; ok {
		return acc
	}
	acc := NewAccount(addr, 0)
	ws.Accounts[addr] = acc
	return acc
}

// NextAppID allocates and returns the next application id.
func (ws *WorldState) NextAppID() AppID {
	ws.nextAppID++
	return ws.nextAppID
}

// NextAssetID allocates and returns the next asset id.
func (ws *WorldState) NextAssetID() AssetID {
	ws.nextAssetID++
	return ws.nextAssetID
}

// App resolves an app id to its attributes (looked up via creator), failing
// with APP_NOT_FOUND if unknown.
func (ws *WorldState) App(id AppID) (*AppAttributes, Address, error) {
	creator, ok := ws.Apps[id]
	if !ok {
		return nil, Address{}, NewExecError(ErrAppNotFound, "")
	}
	acc, err := ws.Account(creator)
	if err != nil {
		return nil, Address{}, err
	}
	app, ok := acc.CreatedApps[id]
	if !ok {
		return nil, Address{}, NewExecError(ErrAppNotFound, "")
	}
	return app, creator, nil
}

// Asset resolves an asset id to its params (looked up via creator), failing
// with ASSET_NOT_FOUND if unknown.
func (ws *WorldState) Asset(id AssetID) (*AssetParams, Address, error) {
	creator, ok := ws.Assets[id]
	if !ok {
		return nil, Address{}, NewExecError(ErrAssetNotFound, "")
	}
	acc, err := ws.Account(creator)
	if err != nil {
		return nil, Address{}, err
	}
	ap, ok := acc.CreatedAssets[id]
	if !ok {
		return nil, Address{}, NewExecError(ErrAssetNotFound, "")
	}
	return ap, creator, nil
}

// CheckInvariants validates the world-state consistency rules the engine
// is expected to preserve across every transaction. ExecuteGroup and
// OptInToASA run it on the transient state before committing; a violation
// rejects the whole operation.
func (ws *WorldState) CheckInvariants() error {
	for id, creator := range ws.Apps {
		acc, err := ws.Account(creator)
		if err != nil {
			return NewExecError(ErrAppNotFound, "app creator missing from accounts")
		}
		if _, ok := acc.CreatedApps[id]; !ok {
			return NewExecError(ErrAppNotFound, "app not listed in creator's created-apps")
		}
	}
	for id, creator := range ws.Assets {
		acc, err := ws.Account(creator)
		if err != nil {
			return NewExecError(ErrAssetNotFound, "asset creator missing from accounts")
		}
		if _, ok := acc.CreatedAssets[id]; !ok {
			return NewExecError(ErrAssetNotFound, "asset not listed in creator's created-assets")
		}
	}
	for _, acc := range ws.Accounts {
		for assetID := range acc.Holdings {
			if _, ok := ws.Assets[assetID]; !ok {
				return NewExecError(ErrAssetNotFound, "holding references a nonexistent asset")
			}
		}
		for appID, ls := range acc.LocalStates {
			app, _, err := ws.App(appID)
			if err != nil {
				return err
			}
			nu, nb := ls.KeyValue.counts()
			if nu > app.LocalSchema.NumUint || nb > app.LocalSchema.NumByteSlice {
				return NewExecError(ErrSchemaExceeded, "local state exceeds declared schema")
			}
		}
		if acc.Balance < acc.MinBalance() {
			return NewExecError(ErrInsufficientBalance, "balance below minimum")
		}
		if len(acc.CreatedApps) > MaxCreatedApps {
			return NewExecError(ErrAppLimitExceeded, "too many created apps")
		}
		if len(acc.LocalStates) > MaxOptedInApps {
			return NewExecError(ErrAppLimitExceeded, "too many app opt-ins")
		}
		if len(acc.CreatedAssets) > MaxCreatedAssets {
			return NewExecError(ErrAssetLimitExceeded, "too many created assets")
		}
		for _, app := range acc.CreatedApps {
			nu, nb := app.GlobalState.counts()
			if nu > app.GlobalSchema.NumUint || nb > app.GlobalSchema.NumByteSlice {
				return NewExecError(ErrSchemaExceeded, "global state exceeds declared schema")
			}
		}
	}
	// Role addresses never resetting non-zero -> zero is enforced at the
	// point of mutation: assertRoleNotRelocked in modifyAsset
	// (asset_lifecycle.go). There is nothing further to check post-hoc since
	// the committed state never records a transition, only the end result.
	return nil
}

// SortedAppIDs returns app ids in ascending order, for deterministic
// iteration in tests and debug dumps.
func (ws *WorldState) SortedAppIDs() []AppID {
	ids := make([]AppID, 0, len(ws.Apps))
	for id := range ws.Apps {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
