package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synnergy-labs/scl-runtime/core"
)

func main() {
	rootCmd := &cobra.Command{Use: "sclrun"}
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(asmCmd())
	rootCmd.AddCommand(scenarioCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runCmd assembles and runs a program standalone in stateless mode, with a
// fresh scratch/const-block interpreter and no attached transaction.
func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [program.teal]",
		Short: "assemble and execute a program in stateless mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			prog, err := core.Assemble(string(src))
			if err != nil {
				return err
			}
			tx := &core.Transaction{Type: core.TxPay}
			ip := core.NewInterpreter(prog, core.ModeStateless, tx, []*core.Transaction{tx}, &core.Globals{}, nil)
			accepted, err := ip.Run()
			if err != nil {
				fmt.Fprintf(os.Stderr, "rejected: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("accepted=%v cost=%d\n", accepted, ip.CostUsed)
			return nil
		},
	}
	return cmd
}

// asmCmd assembles a program and reports its instruction count, a quick
// sanity check for a program before wiring it into a transaction.
func asmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asm [program.teal]",
		Short: "assemble a program and print its instruction summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			prog, err := core.Assemble(string(src))
			if err != nil {
				return err
			}
			summary := struct {
				Version      int `json:"version"`
				Instructions int `json:"instructions"`
			}{Version: prog.Version, Instructions: len(prog.Instructions)}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
	return cmd
}

// scenarioCmd loads a JSON scenario (accounts plus a transaction group),
// builds a Runtime over it, runs the group through ExecuteGroup, and prints
// the per-transaction verdict alongside the resulting balance and holdings
// count of every account listed in the scenario.
func scenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario [scenario.json]",
		Short: "load a JSON scenario and execute its transaction group against a fresh runtime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var sc scenario
			if err := json.Unmarshal(raw, &sc); err != nil {
				return fmt.Errorf("parsing scenario: %w", err)
			}
			rt, txs, err := sc.build()
			if err != nil {
				return fmt.Errorf("building scenario: %w", err)
			}
			results, err := rt.ExecuteGroup(txs)
			if err != nil {
				fmt.Fprintf(os.Stderr, "group rejected: %v\n", err)
				os.Exit(1)
			}
			for i, res := range results {
				fmt.Printf("tx[%d] type=%s accepted=%v txID=%s\n", i, txs[i].Type, res.Accepted, res.TxID)
			}
			for _, a := range sc.Accounts {
				addr, err := core.DecodeAddress(a.Address)
				if err != nil {
					continue
				}
				acc, err := rt.GetAccount(addr)
				if err != nil {
					fmt.Printf("account %s: dropped (zero balance, no state)\n", a.Address)
					continue
				}
				fmt.Printf("account %s: balance=%d holdings=%d\n", a.Address, acc.Balance, len(acc.Holdings))
			}
			return nil
		},
	}
	return cmd
}

// scenario is the JSON input format for the `scenario` subcommand: a set of
// funded accounts and the transaction group to execute against them.
type scenario struct {
	Accounts     []scenarioAccount `json:"accounts"`
	Transactions []scenarioTx      `json:"transactions"`
}

type scenarioAccount struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type scenarioTx struct {
	Type             string   `json:"type"`
	Sender           string   `json:"sender"`
	Fee              uint64   `json:"fee"`
	SecretKeySigned  bool     `json:"secretKeySigned"`
	Receiver         string   `json:"receiver,omitempty"`
	Amount           uint64   `json:"amount,omitempty"`
	CloseRemainderTo string   `json:"closeRemainderTo,omitempty"`

	ConfigAsset uint64           `json:"configAsset,omitempty"`
	AssetParams *scenarioAsset   `json:"assetParams,omitempty"`

	XferAsset     uint64 `json:"xferAsset,omitempty"`
	AssetAmount   uint64 `json:"assetAmount,omitempty"`
	AssetSender   string `json:"assetSender,omitempty"`
	AssetReceiver string `json:"assetReceiver,omitempty"`

	FreezeAsset   uint64 `json:"freezeAsset,omitempty"`
	FreezeAccount string `json:"freezeAccount,omitempty"`
	AssetFrozen   bool   `json:"assetFrozen,omitempty"`

	ApplicationID   uint64   `json:"applicationId,omitempty"`
	OnCompletion    string   `json:"onCompletion,omitempty"`
	ApprovalProgram string   `json:"approvalProgram,omitempty"`
	ClearProgram    string   `json:"clearProgram,omitempty"`
	ApplicationArgs []string `json:"applicationArgs,omitempty"`
	Accounts        []string `json:"accounts,omitempty"`
	ForeignApps     []uint64 `json:"foreignApps,omitempty"`
	ForeignAssets   []uint64 `json:"foreignAssets,omitempty"`
	GlobalInts      uint64   `json:"globalInts,omitempty"`
	GlobalBytes     uint64   `json:"globalBytes,omitempty"`
	LocalInts       uint64   `json:"localInts,omitempty"`
	LocalBytes      uint64   `json:"localBytes,omitempty"`
}

type scenarioAsset struct {
	Total         uint64 `json:"total"`
	Decimals      uint32 `json:"decimals"`
	DefaultFrozen bool   `json:"defaultFrozen"`
	UnitName      string `json:"unitName"`
	AssetName     string `json:"assetName"`
	URL           string `json:"url"`
	Manager       string `json:"manager"`
	Reserve       string `json:"reserve"`
	Freeze        string `json:"freeze"`
	Clawback      string `json:"clawback"`
}

var onCompletionByName = map[string]core.OnComplete{
	"NoOp":              core.NoOp,
	"OptIn":             core.OptIn,
	"CloseOut":          core.CloseOut,
	"ClearState":        core.ClearState,
	"UpdateApplication": core.UpdateApplication,
	"DeleteApplication": core.DeleteApplication,
}

// build constructs a Runtime over the scenario's accounts and converts each
// scenarioTx into a core.Transaction, in declared order.
func (sc *scenario) build() (*core.Runtime, []*core.Transaction, error) {
	accounts := make([]*core.Account, 0, len(sc.Accounts))
	for _, a := range sc.Accounts {
		addr, err := core.DecodeAddress(a.Address)
		if err != nil {
			return nil, nil, fmt.Errorf("account %q: %w", a.Address, err)
		}
		accounts = append(accounts, core.NewAccount(addr, a.Balance))
	}
	rt := core.NewRuntime(accounts)

	txs := make([]*core.Transaction, 0, len(sc.Transactions))
	for i, t := range sc.Transactions {
		tx, err := t.toTransaction()
		if err != nil {
			return nil, nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	return rt, txs, nil
}

func (t *scenarioTx) toTransaction() (*core.Transaction, error) {
	sender, err := core.DecodeAddress(t.Sender)
	if err != nil {
		return nil, fmt.Errorf("sender: %w", err)
	}
	tx := &core.Transaction{
		Type:            core.TxType(t.Type),
		Sender:          sender,
		Fee:             t.Fee,
		SecretKeySigned: t.SecretKeySigned,
	}

	switch tx.Type {
	case core.TxPay:
		recv, err := core.DecodeAddress(t.Receiver)
		if err != nil {
			return nil, fmt.Errorf("receiver: %w", err)
		}
		tx.Receiver = recv
		tx.Amount = t.Amount
		if t.CloseRemainderTo != "" {
			closeTo, err := core.DecodeAddress(t.CloseRemainderTo)
			if err != nil {
				return nil, fmt.Errorf("closeRemainderTo: %w", err)
			}
			tx.CloseRemainder = &closeTo
		}
	case core.TxAcfg:
		tx.ConfigAsset = core.AssetID(t.ConfigAsset)
		if t.AssetParams != nil {
			params, err := t.AssetParams.toAssetParams()
			if err != nil {
				return nil, err
			}
			tx.AssetParams = params
		}
	case core.TxAxfer:
		tx.XferAsset = core.AssetID(t.XferAsset)
		tx.AssetAmount = t.AssetAmount
		if t.AssetReceiver != "" {
			recv, err := core.DecodeAddress(t.AssetReceiver)
			if err != nil {
				return nil, fmt.Errorf("assetReceiver: %w", err)
			}
			tx.AssetReceiver = recv
		}
		if t.AssetSender != "" {
			asnd, err := core.DecodeAddress(t.AssetSender)
			if err != nil {
				return nil, fmt.Errorf("assetSender: %w", err)
			}
			tx.AssetSender = asnd
		}
	case core.TxAfrz:
		tx.FreezeAsset = core.AssetID(t.FreezeAsset)
		tx.AssetFrozen = t.AssetFrozen
		target, err := core.DecodeAddress(t.FreezeAccount)
		if err != nil {
			return nil, fmt.Errorf("freezeAccount: %w", err)
		}
		tx.FreezeAccount = target
	case core.TxAppl:
		tx.ApplicationID = core.AppID(t.ApplicationID)
		tx.ApprovalProgram = t.ApprovalProgram
		tx.ClearProgram = t.ClearProgram
		tx.GlobalSchema = core.Schema{NumUint: t.GlobalInts, NumByteSlice: t.GlobalBytes}
		tx.LocalSchema = core.Schema{NumUint: t.LocalInts, NumByteSlice: t.LocalBytes}
		if t.OnCompletion != "" {
			oc, ok := onCompletionByName[t.OnCompletion]
			if !ok {
				return nil, fmt.Errorf("unknown onCompletion: %s", t.OnCompletion)
			}
			tx.OnCompletion = oc
		}
		for _, arg := range t.ApplicationArgs {
			b, err := hex.DecodeString(arg)
			if err != nil {
				return nil, fmt.Errorf("applicationArgs: %w", err)
			}
			tx.ApplicationArgs = append(tx.ApplicationArgs, b)
		}
		for _, s := range t.Accounts {
			a, err := core.DecodeAddress(s)
			if err != nil {
				return nil, fmt.Errorf("accounts: %w", err)
			}
			tx.Accounts = append(tx.Accounts, a)
		}
		for _, id := range t.ForeignApps {
			tx.ForeignApps = append(tx.ForeignApps, core.AppID(id))
		}
		for _, id := range t.ForeignAssets {
			tx.ForeignAssets = append(tx.ForeignAssets, core.AssetID(id))
		}
	case core.TxKeyReg:
		// no scenario-level fields; registration carries no world-state side effect
	default:
		return nil, fmt.Errorf("unknown transaction type: %s", t.Type)
	}
	return tx, nil
}

func (a *scenarioAsset) toAssetParams() (*core.AssetParams, error) {
	out := &core.AssetParams{
		Total:         a.Total,
		Decimals:      a.Decimals,
		DefaultFrozen: a.DefaultFrozen,
		UnitName:      a.UnitName,
		AssetName:     a.AssetName,
		URL:           a.URL,
	}
	for _, pair := range []struct {
		name string
		dst  *core.Address
	}{
		{a.Manager, &out.Manager},
		{a.Reserve, &out.Reserve},
		{a.Freeze, &out.Freeze},
		{a.Clawback, &out.Clawback},
	} {
		if pair.name == "" {
			continue
		}
		addr, err := core.DecodeAddress(pair.name)
		if err != nil {
			return nil, fmt.Errorf("asset role address: %w", err)
		}
		*pair.dst = addr
	}
	return out, nil
}
