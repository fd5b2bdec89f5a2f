package pump

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"pumpScope/internal/anchor"
)

// Token-launch program events.

var (
	CreateEventDiscriminator   = anchor.Discriminator{27, 114, 169, 77, 222, 235, 99, 118}
	CompleteEventDiscriminator = anchor.Discriminator{95, 114, 97, 156, 212, 46, 152, 8}
	TradeEventDiscriminator    = anchor.Discriminator{189, 219, 127, 211, 78, 230, 97, 238}
)

// CreateEvent is emitted when a token is launched on a bonding curve.
type CreateEvent struct {
	Name                 string           `json:"name"`
	Symbol               string           `json:"symbol"`
	URI                  string           `json:"uri"`
	Mint                 solana.PublicKey `json:"mint"`
	BondingCurve         solana.PublicKey `json:"bonding_curve"`
	User                 solana.PublicKey `json:"user"`
	Creator              solana.PublicKey `json:"creator"`
	Timestamp            int64            `json:"timestamp"`
	VirtualTokenReserves uint64           `json:"virtual_token_reserves"`
	VirtualSolReserves   uint64           `json:"virtual_sol_reserves"`
	RealTokenReserves    uint64           `json:"real_token_reserves"`
	TokenTotalSupply     uint64           `json:"token_total_supply"`
}

func (e *CreateEvent) layout() []anchor.Field {
	return []anchor.Field{
		anchor.String("name", &e.Name),
		anchor.String("symbol", &e.Symbol),
		anchor.String("uri", &e.URI),
		anchor.Pubkey("mint", &e.Mint),
		anchor.Pubkey("bonding_curve", &e.BondingCurve),
		anchor.Pubkey("user", &e.User),
		anchor.Pubkey("creator", &e.Creator),
		anchor.I64("timestamp", &e.Timestamp),
		anchor.U64("virtual_token_reserves", &e.VirtualTokenReserves),
		anchor.U64("virtual_sol_reserves", &e.VirtualSolReserves),
		anchor.U64("real_token_reserves", &e.RealTokenReserves),
		anchor.U64("token_total_supply", &e.TokenTotalSupply),
	}
}

func (CreateEvent) Discriminator() anchor.Discriminator { return CreateEventDiscriminator }

func (e CreateEvent) MarshalWithEncoder(enc *bin.Encoder) error {
	return anchor.EncodeFields(enc, e.layout())
}

func (e *CreateEvent) UnmarshalWithDecoder(dec *bin.Decoder) error {
	return anchor.DecodeFields(dec, e.layout())
}

// CompleteEvent is emitted when a bonding curve fills up.
type CompleteEvent struct {
	User         solana.PublicKey `json:"user"`
	Mint         solana.PublicKey `json:"mint"`
	BondingCurve solana.PublicKey `json:"bonding_curve"`
	Timestamp    int64            `json:"timestamp"`
}

func (e *CompleteEvent) layout() []anchor.Field {
	return []anchor.Field{
		anchor.Pubkey("user", &e.User),
		anchor.Pubkey("mint", &e.Mint),
		anchor.Pubkey("bonding_curve", &e.BondingCurve),
		anchor.I64("timestamp", &e.Timestamp),
	}
}

func (CompleteEvent) Discriminator() anchor.Discriminator { return CompleteEventDiscriminator }

func (e CompleteEvent) MarshalWithEncoder(enc *bin.Encoder) error {
	return anchor.EncodeFields(enc, e.layout())
}

func (e *CompleteEvent) UnmarshalWithDecoder(dec *bin.Decoder) error {
	return anchor.DecodeFields(dec, e.layout())
}

// TradeEvent is emitted for every bonding-curve buy or sell.
type TradeEvent struct {
	Mint                  solana.PublicKey `json:"mint"`
	SolAmount             uint64           `json:"sol_amount"`
	TokenAmount           uint64           `json:"token_amount"`
	IsBuy                 bool             `json:"is_buy"`
	User                  solana.PublicKey `json:"user"`
	Timestamp             int64            `json:"timestamp"`
	VirtualSolReserves    uint64           `json:"virtual_sol_reserves"`
	VirtualTokenReserves  uint64           `json:"virtual_token_reserves"`
	RealSolReserves       uint64           `json:"real_sol_reserves"`
	RealTokenReserves     uint64           `json:"real_token_reserves"`
	FeeRecipient          solana.PublicKey `json:"fee_recipient"`
	FeeBasisPoints        uint64           `json:"fee_basis_points"`
	Fee                   uint64           `json:"fee"`
	Creator               solana.PublicKey `json:"creator"`
	CreatorFeeBasisPoints uint64           `json:"creator_fee_basis_points"`
	CreatorFee            uint64           `json:"creator_fee"`
}

func (e *TradeEvent) layout() []anchor.Field {
	return []anchor.Field{
		anchor.Pubkey("mint", &e.Mint),
		anchor.U64("sol_amount", &e.SolAmount),
		anchor.U64("token_amount", &e.TokenAmount),
		anchor.Bool("is_buy", &e.IsBuy),
		anchor.Pubkey("user", &e.User),
		anchor.I64("timestamp", &e.Timestamp),
		anchor.U64("virtual_sol_reserves", &e.VirtualSolReserves),
		anchor.U64("virtual_token_reserves", &e.VirtualTokenReserves),
		anchor.U64("real_sol_reserves", &e.RealSolReserves),
		anchor.U64("real_token_reserves", &e.RealTokenReserves),
		anchor.Pubkey("fee_recipient", &e.FeeRecipient),
		anchor.U64("fee_basis_points", &e.FeeBasisPoints),
		anchor.U64("fee", &e.Fee),
		anchor.Pubkey("creator", &e.Creator),
		anchor.U64("creator_fee_basis_points", &e.CreatorFeeBasisPoints),
		anchor.U64("creator_fee", &e.CreatorFee),
	}
}

func (TradeEvent) Discriminator() anchor.Discriminator { return TradeEventDiscriminator }

func (e TradeEvent) MarshalWithEncoder(enc *bin.Encoder) error {
	return anchor.EncodeFields(enc, e.layout())
}

func (e *TradeEvent) UnmarshalWithDecoder(dec *bin.Decoder) error {
	return anchor.DecodeFields(dec, e.layout())
}
