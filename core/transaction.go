package core

// TxType enumerates the six transaction kinds the engine understands. The
// `txn Type` field pushes the kind's string; `txn TypeEnum` resolves
// through TypeEnum() below.
type TxType string

const (
	TxPay     TxType = "pay"
	TxKeyReg  TxType = "keyreg"
	TxAcfg    TxType = "acfg"
	TxAxfer   TxType = "axfer"
	TxAfrz    TxType = "afrz"
	TxAppl    TxType = "appl"
)

// TypeEnum maps a TxType to the synthetic integer the `TypeEnum` txn field
// resolves to: pay=1, keyreg=2, acfg=3, axfer=4, afrz=5, appl=6, unknown=0.
func (t TxType) TypeEnum() uint64 {
	switch t {
	case TxPay:
		return 1
	case TxKeyReg:
		return 2
	case TxAcfg:
		return 3
	case TxAxfer:
		return 4
	case TxAfrz:
		return 5
	case TxAppl:
		return 6
	default:
		return 0
	}
}

// OnComplete enumerates the appl-transaction lifecycle actions.
type OnComplete uint64

const (
	NoOp OnComplete = iota
	OptIn
	CloseOut
	ClearState
	UpdateApplication
	DeleteApplication
)

// Transaction is the encoded transaction record, keyed conceptually by the
// short field identifiers the field resolver exposes (`snd`, `rcv`, `amt`,
// ...). Only the fields relevant to the transaction's Type need be
// populated by the caller.
type Transaction struct {
	Type TxType

	Sender     Address // snd
	Fee        uint64  // fee
	FirstValid uint64  // fv
	LastValid  uint64  // lv
	Note       []byte  // note
	Lease      [32]byte
	RekeyTo    Address // rekey
	Group      [32]byte // grp, computed by the engine for groups > 1
	TxID       string   // txID

	// pay
	Receiver        Address // rcv
	Amount          uint64  // amt
	CloseRemainder  *Address

	// keyreg
	VoteKey       [32]byte
	SelectionKey  [32]byte
	VoteFirst     uint64
	VoteLast      uint64
	VoteKeyDilution uint64

	// acfg
	ConfigAsset   AssetID // caid, 0 == create
	AssetParams   *AssetParams // apar

	// axfer / afrz
	XferAsset       AssetID // xaid
	AssetAmount     uint64  // aamt
	AssetSender     Address // asnd (clawback source for RevokeAsset)
	AssetReceiver   Address // arcv
	AssetCloseTo    *Address // aclose
	FreezeAsset     AssetID  // faid
	FreezeAccount   Address  // fadd
	AssetFrozen     bool     // afrz

	// appl
	ApplicationID   AppID      // apid, 0 == create
	OnCompletion    OnComplete // apan
	ApprovalProgram string     // apap (source text)
	ClearProgram    string     // apsu (source text)
	ApplicationArgs [][]byte   // apaa
	Accounts        []Address  // apat (foreign accounts; account index 0 resolves to the sender, 1..N to this slice)
	ForeignApps     []AppID    // apfa
	ForeignAssets   []AssetID  // apas
	GlobalSchema    Schema     // apgs, creation only
	LocalSchema     Schema     // apls, creation only

	// Signing: exactly one of SecretKeySigned or LogicSig may be set.
	SecretKeySigned bool
	LogicSig        *LogicSig

	// GroupIndex is filled in by the engine before execution.
	GroupIndex int
	groupSize  int
}
