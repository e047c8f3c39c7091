package core

func init() {
	registerOp("app_opted_in", 2, simple("app_opted_in", opAppOptedIn))
	registerOp("app_local_get", 2, simple("app_local_get", opAppLocalGet))
	registerOp("app_local_get_ex", 2, simple("app_local_get_ex", opAppLocalGetEx))
	registerOp("app_global_get", 2, simple("app_global_get", opAppGlobalGet))
	registerOp("app_global_get_ex", 2, simple("app_global_get_ex", opAppGlobalGetEx))
	registerOp("app_local_put", 2, simple("app_local_put", opAppLocalPut))
	registerOp("app_local_del", 2, simple("app_local_del", opAppLocalDel))
	registerOp("app_global_put", 2, simple("app_global_put", opAppGlobalPut))
	registerOp("app_global_del", 2, simple("app_global_del", opAppGlobalDel))
	registerOp("balance", 2, simple("balance", opBalance))
	registerOp("min_balance", 3, simple("min_balance", opMinBalance))
	registerOp("asset_holding_get", 2, constructAssetHoldingGet)
	registerOp("asset_params_get", 2, constructAssetParamsGet)
}

// requireEngine rejects any app-state opcode run without a transient engine
// context, which is how the interpreter distinguishes stateless logic-
// signature execution (where app-state opcodes are forbidden) from
// stateful application execution.
func requireEngine(ip *Interpreter) (*Ctx, error) {
	if ip.Mode != ModeStateful || ip.Engine == nil {
		return nil, NewExecError(ErrInvalidOpArg, "app-state opcode used outside stateful execution")
	}
	return ip.Engine, nil
}

func opAppOptedIn(ip *Interpreter) error {
	eng, err := requireEngine(ip)
	if err != nil {
		return err
	}
	appIdx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	acctIdx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	addr, err := eng.ResolveAccount(ip.Tx, acctIdx)
	if err != nil {
		return err
	}
	appID, err := eng.ResolveApp(ip.Tx, appIdx)
	if err != nil {
		return err
	}
	acc, err := eng.World.Account(addr)
	if err != nil {
		return err
	}
	return ip.Stack.PushUint64(boolUint(acc.OptedInApp(appID)))
}

func boolUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func opAppLocalGet(ip *Interpreter) error {
	eng, err := requireEngine(ip)
	if err != nil {
		return err
	}
	key, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	acctIdx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	addr, err := eng.ResolveAccount(ip.Tx, acctIdx)
	if err != nil {
		return err
	}
	acc, err := eng.World.Account(addr)
	if err != nil {
		return err
	}
	ls, ok := acc.LocalStates[ip.Globals.CurrentAppID]
	if !ok {
		return ip.Stack.Push(Uint64Value(0))
	}
	v, ok := ls.KeyValue[string(key)]
	if !ok {
		return ip.Stack.Push(Uint64Value(0))
	}
	return ip.Stack.Push(v)
}

func opAppLocalGetEx(ip *Interpreter) error {
	eng, err := requireEngine(ip)
	if err != nil {
		return err
	}
	key, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	appIdx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	acctIdx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	addr, err := eng.ResolveAccount(ip.Tx, acctIdx)
	if err != nil {
		return err
	}
	appID, err := eng.ResolveApp(ip.Tx, appIdx)
	if err != nil {
		return err
	}
	acc, err := eng.World.Account(addr)
	if err != nil {
		return err
	}
	ls, ok := acc.LocalStates[appID]
	var v Value
	var found bool
	if ok {
		v, found = ls.KeyValue[string(key)]
	}
	if err := ip.Stack.Push(v); err != nil {
		return err
	}
	return ip.Stack.PushUint64(boolUint(found))
}

func opAppGlobalGet(ip *Interpreter) error {
	eng, err := requireEngine(ip)
	if err != nil {
		return err
	}
	key, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	app, _, err := eng.World.App(ip.Globals.CurrentAppID)
	if err != nil {
		return err
	}
	v, ok := app.GlobalState[string(key)]
	if !ok {
		return ip.Stack.Push(Uint64Value(0))
	}
	return ip.Stack.Push(v)
}

func opAppGlobalGetEx(ip *Interpreter) error {
	eng, err := requireEngine(ip)
	if err != nil {
		return err
	}
	key, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	appIdx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	appID, err := eng.ResolveApp(ip.Tx, appIdx)
	if err != nil {
		return err
	}
	app, _, err := eng.World.App(appID)
	if err != nil {
		return err
	}
	v, ok := app.GlobalState[string(key)]
	if err := ip.Stack.Push(v); err != nil {
		return err
	}
	return ip.Stack.PushUint64(boolUint(ok))
}

func opAppLocalPut(ip *Interpreter) error {
	eng, err := requireEngine(ip)
	if err != nil {
		return err
	}
	val, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	key, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	acctIdx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	addr, err := eng.ResolveAccount(ip.Tx, acctIdx)
	if err != nil {
		return err
	}
	acc, err := eng.World.Account(addr)
	if err != nil {
		return err
	}
	ls, ok := acc.LocalStates[ip.Globals.CurrentAppID]
	if !ok {
		return NewExecError(ErrAsaNotOptin, "app_local_put on non-opted-in account")
	}
	if !ls.KeyValue.fitsSchema(string(key), val, ls.Schema) {
		return NewExecError(ErrSchemaExceeded, "app_local_put exceeds local schema")
	}
	ls.KeyValue[string(key)] = val
	acc.LocalStates[ip.Globals.CurrentAppID] = ls
	return nil
}

func opAppLocalDel(ip *Interpreter) error {
	eng, err := requireEngine(ip)
	if err != nil {
		return err
	}
	key, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	acctIdx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	addr, err := eng.ResolveAccount(ip.Tx, acctIdx)
	if err != nil {
		return err
	}
	acc, err := eng.World.Account(addr)
	if err != nil {
		return err
	}
	if ls, ok := acc.LocalStates[ip.Globals.CurrentAppID]; ok {
		delete(ls.KeyValue, string(key))
	}
	return nil
}

func opAppGlobalPut(ip *Interpreter) error {
	eng, err := requireEngine(ip)
	if err != nil {
		return err
	}
	val, err := ip.Stack.Pop()
	if err != nil {
		return err
	}
	key, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	app, creator, err := eng.World.App(ip.Globals.CurrentAppID)
	if err != nil {
		return err
	}
	if !app.GlobalState.fitsSchema(string(key), val, app.GlobalSchema) {
		return NewExecError(ErrSchemaExceeded, "app_global_put exceeds global schema")
	}
	app.GlobalState[string(key)] = val
	_ = creator
	return nil
}

func opAppGlobalDel(ip *Interpreter) error {
	eng, err := requireEngine(ip)
	if err != nil {
		return err
	}
	key, err := ip.Stack.PopBytes()
	if err != nil {
		return err
	}
	app, _, err := eng.World.App(ip.Globals.CurrentAppID)
	if err != nil {
		return err
	}
	delete(app.GlobalState, string(key))
	return nil
}

func opBalance(ip *Interpreter) error {
	eng, err := requireEngine(ip)
	if err != nil {
		return err
	}
	acctIdx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	addr, err := eng.ResolveAccount(ip.Tx, acctIdx)
	if err != nil {
		return err
	}
	acc, err := eng.World.Account(addr)
	if err != nil {
		return err
	}
	return ip.Stack.PushUint64(acc.Balance)
}

func opMinBalance(ip *Interpreter) error {
	eng, err := requireEngine(ip)
	if err != nil {
		return err
	}
	acctIdx, err := ip.Stack.PopUint64()
	if err != nil {
		return err
	}
	addr, err := eng.ResolveAccount(ip.Tx, acctIdx)
	if err != nil {
		return err
	}
	acc, err := eng.World.Account(addr)
	if err != nil {
		return err
	}
	return ip.Stack.PushUint64(acc.MinBalance())
}

// constructAssetHoldingGet builds `asset_holding_get FIELD`, pushing
// (value, exists) for the named holding field: Balance or Frozen.
func constructAssetHoldingGet(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("asset_holding_get", args, 1, line); err != nil {
		return nil, err
	}
	field := args[0]
	return &Instruction{Name: "asset_holding_get", Line: line, Exec: func(ip *Interpreter) error {
		eng, err := requireEngine(ip)
		if err != nil {
			return err
		}
		assetIdx, err := ip.Stack.PopUint64()
		if err != nil {
			return err
		}
		acctIdx, err := ip.Stack.PopUint64()
		if err != nil {
			return err
		}
		addr, err := eng.ResolveAccount(ip.Tx, acctIdx)
		if err != nil {
			return err
		}
		assetID, err := eng.ResolveAsset(ip.Tx, assetIdx)
		if err != nil {
			return err
		}
		acc, err := eng.World.Account(addr)
		if err != nil {
			return err
		}
		holding, ok := acc.Holdings[assetID]
		var v Value
		if ok {
			switch field {
			case "AssetBalance":
				v = Uint64Value(holding.Amount)
			case "AssetFrozen":
				v = Uint64Value(boolUint(holding.Frozen))
			default:
				return NewExecError(ErrUnknownAssetField, field)
			}
		}
		if err := ip.Stack.Push(v); err != nil {
			return err
		}
		return ip.Stack.PushUint64(boolUint(ok))
	}}, nil
}

// constructAssetParamsGet builds `asset_params_get FIELD`, pushing
// (value, exists) for the named asset-params field.
func constructAssetParamsGet(args []string, version, line int) (*Instruction, error) {
	if err := requireArgs("asset_params_get", args, 1, line); err != nil {
		return nil, err
	}
	field := args[0]
	return &Instruction{Name: "asset_params_get", Line: line, Exec: func(ip *Interpreter) error {
		eng, err := requireEngine(ip)
		if err != nil {
			return err
		}
		assetIdx, err := ip.Stack.PopUint64()
		if err != nil {
			return err
		}
		assetID, err := eng.ResolveAsset(ip.Tx, assetIdx)
		if err != nil {
			return err
		}
		params, _, err := eng.World.Asset(assetID)
		exists := err == nil
		var v Value
		if exists {
			pv, err := assetParamField(params, field)
			if err != nil {
				return err
			}
			v = pv
		}
		if err := ip.Stack.Push(v); err != nil {
			return err
		}
		return ip.Stack.PushUint64(boolUint(exists))
	}}, nil
}

func assetParamField(p *AssetParams, field string) (Value, error) {
	switch field {
	case "AssetTotal":
		return Uint64Value(p.Total), nil
	case "AssetDecimals":
		return Uint64Value(uint64(p.Decimals)), nil
	case "AssetDefaultFrozen":
		return Uint64Value(boolUint(p.DefaultFrozen)), nil
	case "AssetUnitName":
		return BytesValue([]byte(p.UnitName)), nil
	case "AssetName":
		return BytesValue([]byte(p.AssetName)), nil
	case "AssetURL":
		return BytesValue([]byte(p.URL)), nil
	case "AssetMetadataHash":
		return BytesValue(p.MetadataHash[:]), nil
	case "AssetManager":
		return BytesValue(p.Manager.Bytes()), nil
	case "AssetReserve":
		return BytesValue(p.Reserve.Bytes()), nil
	case "AssetFreeze":
		return BytesValue(p.Freeze.Bytes()), nil
	case "AssetClawback":
		return BytesValue(p.Clawback.Bytes()), nil
	default:
		return Value{}, NewExecError(ErrUnknownAssetField, field)
	}
}
