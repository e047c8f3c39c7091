package core

// Runtime is the external entry point: an explicit, caller-owned value
// wrapping a world state and an injectable clock, never a process-level
// singleton. All shared state lives on the world state it owns.
type Runtime struct {
	World   *WorldState
	Globals *Globals
}

// NewRuntime builds a Runtime over the given accounts with sensible default
// globals (runtime.new(accounts)).
func NewRuntime(accounts []*Account) *Runtime {
	return &Runtime{
		World: NewWorldState(accounts),
		Globals: &Globals{
			MinTxnFee:       1000,
			MinBalance:      MinBalanceBase,
			MaxTxnLife:      1000,
			LogicSigVersion: MaxTEALVersion,
		},
	}
}

// SetRound injects the round value visible via `global Round`.
func (r *Runtime) SetRound(n uint64) { r.Globals.Round = n }

// SetTimestamp injects the timestamp visible via `global LatestTimestamp`.
func (r *Runtime) SetTimestamp(t uint64) { r.Globals.LatestTimestamp = t }

// ExecuteTx runs a single transaction as a one-element group.
func (r *Runtime) ExecuteTx(tx *Transaction) (TxResult, error) {
	results, err := ExecuteGroup(r.World, []*Transaction{tx}, r.Globals)
	if err != nil {
		return TxResult{}, err
	}
	return results[0], nil
}

// ExecuteGroup runs an atomic transaction group.
func (r *Runtime) ExecuteGroup(txs []*Transaction) ([]TxResult, error) {
	return ExecuteGroup(r.World, txs, r.Globals)
}

// CreateAsset is the convenience form of runtime.create_asset: wraps a
// key-signed `acfg` creation transaction paying MinTxnFee, useful for test
// fixtures and scripted setup.
func (r *Runtime) CreateAsset(creator Address, params AssetParams) (AssetID, error) {
	tx := &Transaction{
		Type:            TxAcfg,
		Sender:          creator,
		Fee:             r.Globals.MinTxnFee,
		SecretKeySigned: true,
		AssetParams:     &params,
	}
	if _, err := r.ExecuteTx(tx); err != nil {
		return 0, err
	}
	for id, c := range r.World.Assets {
		if c == creator {
			if ap, ok := r.World.Accounts[creator].CreatedAssets[id]; ok && *ap == params {
				return id, nil
			}
		}
	}
	return 0, NewExecError(ErrAssetNotFound, "created asset not found after commit")
}

// AddAppParams bundles the fields runtime.add_app accepts beyond the raw
// program sources.
type AddAppParams struct {
	Sender        Address
	LocalInts     uint64
	LocalBytes    uint64
	GlobalInts    uint64
	GlobalBytes   uint64
	AppArgs       [][]byte
	Accounts      []Address
	ForeignApps   []AppID
	ForeignAssets []AssetID
}

// AddApp is the convenience form of runtime.add_app: assembles a creation
// `appl` transaction and returns the new app id on acceptance.
func (r *Runtime) AddApp(p AddAppParams, approvalSrc, clearSrc string) (AppID, error) {
	before := make(map[AppID]bool, len(r.World.Apps))
	for id := range r.World.Apps {
		before[id] = true
	}
	tx := &Transaction{
		Type:            TxAppl,
		Sender:          p.Sender,
		Fee:             r.Globals.MinTxnFee,
		SecretKeySigned: true,
		ApprovalProgram: approvalSrc,
		ClearProgram:    clearSrc,
		ApplicationArgs: p.AppArgs,
		Accounts:        p.Accounts,
		ForeignApps:     p.ForeignApps,
		ForeignAssets:   p.ForeignAssets,
		GlobalSchema:    Schema{NumUint: p.GlobalInts, NumByteSlice: p.GlobalBytes},
		LocalSchema:     Schema{NumUint: p.LocalInts, NumByteSlice: p.LocalBytes},
	}
	if _, err := r.ExecuteTx(tx); err != nil {
		return 0, err
	}
	for id := range r.World.Apps {
		if !before[id] {
			return id, nil
		}
	}
	return 0, NewExecError(ErrAppNotFound, "created app not found after commit")
}

// OptInToApp wraps an `appl` OptIn transaction (runtime.opt_in_to_app).
func (r *Runtime) OptInToApp(addr Address, appID AppID) error {
	tx := &Transaction{
		Type:            TxAppl,
		Sender:          addr,
		Fee:             r.Globals.MinTxnFee,
		SecretKeySigned: true,
		ApplicationID:   appID,
		OnCompletion:    OptIn,
	}
	_, err := r.ExecuteTx(tx)
	return err
}

// OptInToASA wraps an asset opt-in (runtime.opt_in_to_asa): a zero-amount
// self-transfer is the on-chain convention, but this runtime exposes the
// allocation directly through Ctx.OptInAsset to avoid a special-cased
// zero-amount branch in the transfer path.
func (r *Runtime) OptInToASA(assetID AssetID, addr Address) error {
	if _, _, err := r.World.Asset(assetID); err != nil {
		return err
	}
	transient := r.World.Clone()
	eng := &Ctx{World: transient, Globals: r.Globals}
	if err := eng.OptInAsset(addr, assetID); err != nil {
		return err
	}
	if err := transient.CheckInvariants(); err != nil {
		return err
	}
	*r.World = *transient
	return nil
}

// UpdateApp wraps an UpdateApplication transaction (runtime.update_app).
func (r *Runtime) UpdateApp(sender Address, appID AppID, newApproval, newClear string) error {
	tx := &Transaction{
		Type:            TxAppl,
		Sender:          sender,
		Fee:             r.Globals.MinTxnFee,
		SecretKeySigned: true,
		ApplicationID:   appID,
		OnCompletion:    UpdateApplication,
		ApprovalProgram: newApproval,
		ClearProgram:    newClear,
	}
	_, err := r.ExecuteTx(tx)
	return err
}

// DeleteApp wraps a DeleteApplication transaction (runtime.delete_app).
func (r *Runtime) DeleteApp(sender Address, appID AppID) error {
	tx := &Transaction{
		Type:            TxAppl,
		Sender:          sender,
		Fee:             r.Globals.MinTxnFee,
		SecretKeySigned: true,
		ApplicationID:   appID,
		OnCompletion:    DeleteApplication,
	}
	_, err := r.ExecuteTx(tx)
	return err
}

// ModifyAsset wraps an acfg modify transaction (runtime.modify_asset).
func (r *Runtime) ModifyAsset(sender Address, assetID AssetID, fields AssetParams) error {
	tx := &Transaction{
		Type:            TxAcfg,
		Sender:          sender,
		Fee:             r.Globals.MinTxnFee,
		SecretKeySigned: true,
		ConfigAsset:     assetID,
		AssetParams:     &fields,
	}
	_, err := r.ExecuteTx(tx)
	return err
}

// FreezeAsset wraps an afrz transaction (runtime.freeze_asset).
func (r *Runtime) FreezeAsset(sender Address, assetID AssetID, target Address, frozen bool) error {
	tx := &Transaction{
		Type:            TxAfrz,
		Sender:          sender,
		Fee:             r.Globals.MinTxnFee,
		SecretKeySigned: true,
		FreezeAsset:     assetID,
		FreezeAccount:   target,
		AssetFrozen:     frozen,
	}
	_, err := r.ExecuteTx(tx)
	return err
}

// RevokeAsset wraps a clawback axfer transaction (runtime.revoke_asset).
func (r *Runtime) RevokeAsset(revoker Address, assetID AssetID, from, to Address, amount uint64) error {
	tx := &Transaction{
		Type:            TxAxfer,
		Sender:          revoker,
		Fee:             r.Globals.MinTxnFee,
		SecretKeySigned: true,
		XferAsset:       assetID,
		AssetSender:     from,
		AssetReceiver:   to,
		AssetAmount:     amount,
	}
	_, err := r.ExecuteTx(tx)
	return err
}

// DestroyAsset wraps an acfg destroy transaction (runtime.destroy_asset).
func (r *Runtime) DestroyAsset(sender Address, assetID AssetID) error {
	tx := &Transaction{
		Type:            TxAcfg,
		Sender:          sender,
		Fee:             r.Globals.MinTxnFee,
		SecretKeySigned: true,
		ConfigAsset:     assetID,
	}
	_, err := r.ExecuteTx(tx)
	return err
}

// GetLogicSig assembles a program into a reusable LogicSig value
// (runtime.get_logic_sig).
func (r *Runtime) GetLogicSig(src string) (*LogicSig, error) {
	if _, err := Assemble(src); err != nil {
		return nil, err
	}
	return &LogicSig{Program: src}, nil
}

// GetAccount is the runtime.get_account accessor.
func (r *Runtime) GetAccount(addr Address) (*Account, error) { return r.World.Account(addr) }

// GetApp is the runtime.get_app accessor.
func (r *Runtime) GetApp(appID AppID) (*AppAttributes, error) {
	app, _, err := r.World.App(appID)
	return app, err
}

// GetAssetDef is the runtime.get_asset_def accessor.
func (r *Runtime) GetAssetDef(assetID AssetID) (*AssetParams, error) {
	ap, _, err := r.World.Asset(assetID)
	return ap, err
}

// GetAssetHolding is the runtime.get_asset_holding accessor.
func (r *Runtime) GetAssetHolding(assetID AssetID, addr Address) (AssetHolding, bool, error) {
	acc, err := r.World.Account(addr)
	if err != nil {
		return AssetHolding{}, false, err
	}
	h, ok := acc.Holdings[assetID]
	return h, ok, nil
}

// GetGlobalState is the runtime.get_global_state accessor.
func (r *Runtime) GetGlobalState(appID AppID, key string) (Value, bool, error) {
	app, _, err := r.World.App(appID)
	if err != nil {
		return Value{}, false, err
	}
	v, ok := app.GlobalState[key]
	return v, ok, nil
}

// GetLocalState is the runtime.get_local_state accessor.
func (r *Runtime) GetLocalState(appID AppID, addr Address, key string) (Value, bool, error) {
	acc, err := r.World.Account(addr)
	if err != nil {
		return Value{}, false, err
	}
	ls, ok := acc.LocalStates[appID]
	if !ok {
		return Value{}, false, nil
	}
	v, ok := ls.KeyValue[key]
	return v, ok, nil
}
