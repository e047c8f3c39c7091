package core_test

import (
	"testing"

	core "github.com/synnergy-labs/scl-runtime/core"
)

func TestRuntimeInjectableClock(t *testing.T) {
	rt := core.NewRuntime([]*core.Account{core.NewAccount(addr(1), 10_000_000)})
	rt.SetRound(42)
	rt.SetTimestamp(1_700_000_000)
	if rt.Globals.Round != 42 {
		t.Fatalf("Round = %d", rt.Globals.Round)
	}
	if rt.Globals.LatestTimestamp != 1_700_000_000 {
		t.Fatalf("LatestTimestamp = %d", rt.Globals.LatestTimestamp)
	}
}

func TestGetLogicSigAssemblesProgram(t *testing.T) {
	rt := core.NewRuntime(nil)
	ls, err := rt.GetLogicSig(alwaysAcceptProgram)
	if err != nil {
		t.Fatalf("GetLogicSig: %v", err)
	}
	if ls.Program != alwaysAcceptProgram {
		t.Fatal("expected returned LogicSig to carry the given program text")
	}
}

func TestGetLogicSigRejectsBadProgram(t *testing.T) {
	rt := core.NewRuntime(nil)
	if _, err := rt.GetLogicSig("int 1\n#pragma version 2\n"); err == nil {
		t.Fatal("expected assembly failure to propagate")
	}
}

func TestModifyAssetRejectsRelockingRoleAddress(t *testing.T) {
	creator := addr(10)
	rt := core.NewRuntime([]*core.Account{core.NewAccount(creator, 10_000_000)})
	assetID, err := rt.CreateAsset(creator, core.AssetParams{
		Total: 10, Manager: creator, Reserve: creator, Freeze: creator, Clawback: creator,
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	err = rt.ModifyAsset(creator, assetID, core.AssetParams{
		Manager: creator, Reserve: creator, Freeze: core.ZeroAddress, Clawback: creator,
	})
	if !core.IsKind(err, core.ErrRoleAddressRelocked) {
		t.Fatalf("expected ROLE_ADDRESS_RELOCKED, got %v", err)
	}
}

func TestModifyAssetRejectsNonManager(t *testing.T) {
	creator, outsider := addr(11), addr(12)
	rt := core.NewRuntime([]*core.Account{
		core.NewAccount(creator, 10_000_000),
		core.NewAccount(outsider, 10_000_000),
	})
	assetID, err := rt.CreateAsset(creator, core.AssetParams{
		Total: 10, Manager: creator, Reserve: creator, Freeze: creator, Clawback: creator,
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	err = rt.ModifyAsset(outsider, assetID, core.AssetParams{
		Manager: creator, Reserve: creator, Freeze: creator, Clawback: creator,
	})
	if !core.IsKind(err, core.ErrManager) {
		t.Fatalf("expected MANAGER_ERROR, got %v", err)
	}
}
