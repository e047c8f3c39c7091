package core_test

import (
	"testing"

	core "github.com/synnergy-labs/scl-runtime/core"
)

func addr(b byte) core.Address {
	var a core.Address
	a[0] = b
	return a
}

func TestPayTransferMovesBalance(t *testing.T) {
	sender, receiver := addr(1), addr(2)
	rt := core.NewRuntime([]*core.Account{
		core.NewAccount(sender, 10_000_000),
		core.NewAccount(receiver, 10_000_000),
	})
	tx := &core.Transaction{
		Type: core.TxPay, Sender: sender, Receiver: receiver,
		Amount: 5000, Fee: 1000, SecretKeySigned: true,
	}
	res, err := rt.ExecuteTx(tx)
	if err != nil {
		t.Fatalf("ExecuteTx: %v", err)
	}
	if !res.Accepted {
		t.Fatal("expected acceptance")
	}
	s, _ := rt.GetAccount(sender)
	r, _ := rt.GetAccount(receiver)
	if s.Balance != 10_000_000-5000-1000 {
		t.Fatalf("sender balance = %d", s.Balance)
	}
	if r.Balance != 10_000_000+5000 {
		t.Fatalf("receiver balance = %d", r.Balance)
	}
}

func TestPayCloseRemainderZeroesAndDropsSenderAccount(t *testing.T) {
	sender, receiver, closeTo := addr(5), addr(6), addr(7)
	rt := core.NewRuntime([]*core.Account{
		core.NewAccount(sender, 50_000),
		core.NewAccount(receiver, 10_000),
		core.NewAccount(closeTo, 0),
	})
	tx := &core.Transaction{
		Type: core.TxPay, Sender: sender, Receiver: receiver,
		Amount: 1000, Fee: 1000, SecretKeySigned: true,
		CloseRemainder: &closeTo,
	}
	res, err := rt.ExecuteTx(tx)
	if err != nil {
		t.Fatalf("ExecuteTx: %v", err)
	}
	if !res.Accepted {
		t.Fatal("expected acceptance")
	}
	if _, err := rt.GetAccount(sender); err == nil {
		t.Fatal("expected sender account to be dropped after closing out to zero")
	}
	closed, err := rt.GetAccount(closeTo)
	if err != nil {
		t.Fatalf("GetAccount(closeTo): %v", err)
	}
	if closed.Balance != 50_000-1000-1000 {
		t.Fatalf("closeTo balance = %d", closed.Balance)
	}
}

func TestGroupRollsBackOnFailingTransaction(t *testing.T) {
	a, b := addr(3), addr(4)
	rt := core.NewRuntime([]*core.Account{
		core.NewAccount(a, 20_000),
		core.NewAccount(b, 20_000),
	})
	first := &core.Transaction{
		Type: core.TxPay, Sender: a, Receiver: b,
		Amount: 1000, Fee: 1000, SecretKeySigned: true,
	}
	second := &core.Transaction{
		Type: core.TxPay, Sender: a, Receiver: b,
		Amount: 1_000_000, Fee: 1000, SecretKeySigned: true,
	}
	_, err := rt.ExecuteGroup([]*core.Transaction{first, second})
	if err == nil {
		t.Fatal("expected group rejection")
	}
	acc, _ := rt.GetAccount(a)
	if acc.Balance != 20_000 {
		t.Fatalf("expected rollback to leave balance untouched, got %d", acc.Balance)
	}
}

func TestAssetLifecycleCreateTransferFreezeDestroy(t *testing.T) {
	creator, holder := addr(5), addr(6)
	rt := core.NewRuntime([]*core.Account{
		core.NewAccount(creator, 10_000_000),
		core.NewAccount(holder, 10_000_000),
	})
	assetID, err := rt.CreateAsset(creator, core.AssetParams{
		Total: 1000, UnitName: "UNT", AssetName: "Unit",
		Manager: creator, Reserve: creator, Freeze: creator, Clawback: creator,
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}

	if err := rt.OptInToASA(assetID, holder); err != nil {
		t.Fatalf("OptInToASA: %v", err)
	}

	transfer := &core.Transaction{
		Type: core.TxAxfer, Sender: creator, XferAsset: assetID,
		AssetReceiver: holder, AssetAmount: 100, Fee: 1000, SecretKeySigned: true,
	}
	if _, err := rt.ExecuteTx(transfer); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	holding, _, err := rt.GetAssetHolding(assetID, holder)
	if err != nil || holding.Amount != 100 {
		t.Fatalf("holder holding = %+v, err %v", holding, err)
	}

	if err := rt.FreezeAsset(creator, assetID, holder, true); err != nil {
		t.Fatalf("FreezeAsset: %v", err)
	}
	frozenTransfer := &core.Transaction{
		Type: core.TxAxfer, Sender: creator, XferAsset: assetID,
		AssetReceiver: holder, AssetAmount: 10, Fee: 1000, SecretKeySigned: true,
	}
	if _, err := rt.ExecuteTx(frozenTransfer); !core.IsKind(err, core.ErrAccountAssetFrozen) {
		t.Fatalf("expected ACCOUNT_ASSET_FROZEN, got %v", err)
	}

	if err := rt.FreezeAsset(creator, assetID, holder, false); err != nil {
		t.Fatalf("unfreeze: %v", err)
	}
	if err := rt.RevokeAsset(creator, assetID, holder, creator, 100); err != nil {
		t.Fatalf("RevokeAsset: %v", err)
	}
	if err := rt.DestroyAsset(creator, assetID); err != nil {
		t.Fatalf("DestroyAsset: %v", err)
	}
	if _, err := rt.GetAssetDef(assetID); err == nil {
		t.Fatal("expected asset to no longer exist after destroy")
	}
}

const appApproval = "#pragma version 2\n" +
	"txn ApplicationID\n" +
	"bz skip\n" +
	"byte \"count\"\n" +
	"int 1\n" +
	"app_global_put\n" +
	"skip:\n" +
	"int 1\n"

const appClearRejects = "#pragma version 2\nint 0\n"

func TestAppLifecycleCreateCallOptInClearDelete(t *testing.T) {
	creator, user := addr(7), addr(8)
	rt := core.NewRuntime([]*core.Account{
		core.NewAccount(creator, 10_000_000),
		core.NewAccount(user, 10_000_000),
	})

	appID, err := rt.AddApp(core.AddAppParams{Sender: creator, GlobalInts: 1}, appApproval, appClearRejects)
	if err != nil {
		t.Fatalf("AddApp: %v", err)
	}

	callTx := &core.Transaction{
		Type: core.TxAppl, Sender: creator, ApplicationID: appID,
		OnCompletion: core.NoOp, Fee: 1000, SecretKeySigned: true,
	}
	if _, err := rt.ExecuteTx(callTx); err != nil {
		t.Fatalf("NoOp call: %v", err)
	}
	v, ok, err := rt.GetGlobalState(appID, "count")
	if err != nil || !ok || v.Uint64() != 1 {
		t.Fatalf("expected global count=1, got v=%v ok=%v err=%v", v, ok, err)
	}

	if err := rt.OptInToApp(user, appID); err != nil {
		t.Fatalf("OptInToApp: %v", err)
	}

	if err := rt.DeleteApp(creator, appID); err == nil {
		t.Fatal("expected delete to be blocked while an account is still opted in")
	}

	clearTx := &core.Transaction{
		Type: core.TxAppl, Sender: user, ApplicationID: appID,
		OnCompletion: core.ClearState, Fee: 1000, SecretKeySigned: true,
	}
	if _, err := rt.ExecuteTx(clearTx); err != nil {
		t.Fatalf("clear transaction should succeed despite clear program rejecting: %v", err)
	}
	userAcc, _ := rt.GetAccount(user)
	if userAcc.OptedInApp(appID) {
		t.Fatal("expected local state removed after ClearState despite program rejection")
	}

	if err := rt.DeleteApp(creator, appID); err != nil {
		t.Fatalf("DeleteApp after clear: %v", err)
	}
	if _, err := rt.GetApp(appID); err == nil {
		t.Fatal("expected app to no longer exist after delete")
	}
}
