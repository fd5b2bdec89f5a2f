package pump

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"pumpScope/internal/anchor"
)

// Pool (AMM) program events.

var (
	BuyEventDiscriminator        = anchor.Discriminator{103, 244, 82, 31, 44, 245, 119, 119}
	SellEventDiscriminator       = anchor.Discriminator{62, 47, 55, 10, 165, 3, 220, 42}
	CreatePoolEventDiscriminator = anchor.Discriminator{177, 49, 12, 210, 160, 118, 167, 116}
)

// BuyEvent is emitted when base tokens are bought from a pool.
type BuyEvent struct {
	Timestamp                        int64            `json:"timestamp"`
	BaseAmountOut                    uint64           `json:"base_amount_out"`
	MaxQuoteAmountIn                 uint64           `json:"max_quote_amount_in"`
	UserBaseTokenReserves            uint64           `json:"user_base_token_reserves"`
	UserQuoteTokenReserves           uint64           `json:"user_quote_token_reserves"`
	PoolBaseTokenReserves            uint64           `json:"pool_base_token_reserves"`
	PoolQuoteTokenReserves           uint64           `json:"pool_quote_token_reserves"`
	QuoteAmountIn                    uint64           `json:"quote_amount_in"`
	LpFeeBasisPoints                 uint64           `json:"lp_fee_basis_points"`
	LpFee                            uint64           `json:"lp_fee"`
	ProtocolFeeBasisPoints           uint64           `json:"protocol_fee_basis_points"`
	ProtocolFee                      uint64           `json:"protocol_fee"`
	QuoteAmountInWithLpFee           uint64           `json:"quote_amount_in_with_lp_fee"`
	UserQuoteAmountIn                uint64           `json:"user_quote_amount_in"`
	Pool                             solana.PublicKey `json:"pool"`
	User                             solana.PublicKey `json:"user"`
	UserBaseTokenAccount             solana.PublicKey `json:"user_base_token_account"`
	UserQuoteTokenAccount            solana.PublicKey `json:"user_quote_token_account"`
	ProtocolFeeRecipient             solana.PublicKey `json:"protocol_fee_recipient"`
	ProtocolFeeRecipientTokenAccount solana.PublicKey `json:"protocol_fee_recipient_token_account"`
	CoinCreator                      solana.PublicKey `json:"coin_creator"`
	CoinCreatorFeeBasisPoints        uint64           `json:"coin_creator_fee_basis_points"`
	CoinCreatorFee                   uint64           `json:"coin_creator_fee"`
}

func (e *BuyEvent) layout() []anchor.Field {
	return []anchor.Field{
		anchor.I64("timestamp", &e.Timestamp),
		anchor.U64("base_amount_out", &e.BaseAmountOut),
		anchor.U64("max_quote_amount_in", &e.MaxQuoteAmountIn),
		anchor.U64("user_base_token_reserves", &e.UserBaseTokenReserves),
		anchor.U64("user_quote_token_reserves", &e.UserQuoteTokenReserves),
		anchor.U64("pool_base_token_reserves", &e.PoolBaseTokenReserves),
		anchor.U64("pool_quote_token_reserves", &e.PoolQuoteTokenReserves),
		anchor.U64("quote_amount_in", &e.QuoteAmountIn),
		anchor.U64("lp_fee_basis_points", &e.LpFeeBasisPoints),
		anchor.U64("lp_fee", &e.LpFee),
		anchor.U64("protocol_fee_basis_points", &e.ProtocolFeeBasisPoints),
		anchor.U64("protocol_fee", &e.ProtocolFee),
		anchor.U64("quote_amount_in_with_lp_fee", &e.QuoteAmountInWithLpFee),
		anchor.U64("user_quote_amount_in", &e.UserQuoteAmountIn),
		anchor.Pubkey("pool", &e.Pool),
		anchor.Pubkey("user", &e.User),
		anchor.Pubkey("user_base_token_account", &e.UserBaseTokenAccount),
		anchor.Pubkey("user_quote_token_account", &e.UserQuoteTokenAccount),
		anchor.Pubkey("protocol_fee_recipient", &e.ProtocolFeeRecipient),
		anchor.Pubkey("protocol_fee_recipient_token_account", &e.ProtocolFeeRecipientTokenAccount),
		anchor.Pubkey("coin_creator", &e.CoinCreator),
		anchor.U64("coin_creator_fee_basis_points", &e.CoinCreatorFeeBasisPoints),
		anchor.U64("coin_creator_fee", &e.CoinCreatorFee),
	}
}

func (BuyEvent) Discriminator() anchor.Discriminator { return BuyEventDiscriminator }

func (e BuyEvent) MarshalWithEncoder(enc *bin.Encoder) error {
	return anchor.EncodeFields(enc, e.layout())
}

func (e *BuyEvent) UnmarshalWithDecoder(dec *bin.Decoder) error {
	return anchor.DecodeFields(dec, e.layout())
}

// SellEvent is emitted when base tokens are sold into a pool.
type SellEvent struct {
	Timestamp                        int64            `json:"timestamp"`
	BaseAmountIn                     uint64           `json:"base_amount_in"`
	MinQuoteAmountOut                uint64           `json:"min_quote_amount_out"`
	UserBaseTokenReserves            uint64           `json:"user_base_token_reserves"`
	UserQuoteTokenReserves           uint64           `json:"user_quote_token_reserves"`
	PoolBaseTokenReserves            uint64           `json:"pool_base_token_reserves"`
	PoolQuoteTokenReserves           uint64           `json:"pool_quote_token_reserves"`
	QuoteAmountOut                   uint64           `json:"quote_amount_out"`
	LpFeeBasisPoints                 uint64           `json:"lp_fee_basis_points"`
	LpFee                            uint64           `json:"lp_fee"`
	ProtocolFeeBasisPoints           uint64           `json:"protocol_fee_basis_points"`
	ProtocolFee                      uint64           `json:"protocol_fee"`
	QuoteAmountOutWithoutLpFee       uint64           `json:"quote_amount_out_without_lp_fee"`
	UserQuoteAmountOut               uint64           `json:"user_quote_amount_out"`
	Pool                             solana.PublicKey `json:"pool"`
	User                             solana.PublicKey `json:"user"`
	UserBaseTokenAccount             solana.PublicKey `json:"user_base_token_account"`
	UserQuoteTokenAccount            solana.PublicKey `json:"user_quote_token_account"`
	ProtocolFeeRecipient             solana.PublicKey `json:"protocol_fee_recipient"`
	ProtocolFeeRecipientTokenAccount solana.PublicKey `json:"protocol_fee_recipient_token_account"`
	CoinCreator                      solana.PublicKey `json:"coin_creator"`
	CoinCreatorFeeBasisPoints        uint64           `json:"coin_creator_fee_basis_points"`
	CoinCreatorFee                   uint64           `json:"coin_creator_fee"`
}

func (e *SellEvent) layout() []anchor.Field {
	return []anchor.Field{
		anchor.I64("timestamp", &e.Timestamp),
		anchor.U64("base_amount_in", &e.BaseAmountIn),
		anchor.U64("min_quote_amount_out", &e.MinQuoteAmountOut),
		anchor.U64("user_base_token_reserves", &e.UserBaseTokenReserves),
		anchor.U64("user_quote_token_reserves", &e.UserQuoteTokenReserves),
		anchor.U64("pool_base_token_reserves", &e.PoolBaseTokenReserves),
		anchor.U64("pool_quote_token_reserves", &e.PoolQuoteTokenReserves),
		anchor.U64("quote_amount_out", &e.QuoteAmountOut),
		anchor.U64("lp_fee_basis_points", &e.LpFeeBasisPoints),
		anchor.U64("lp_fee", &e.LpFee),
		anchor.U64("protocol_fee_basis_points", &e.ProtocolFeeBasisPoints),
		anchor.U64("protocol_fee", &e.ProtocolFee),
		anchor.U64("quote_amount_out_without_lp_fee", &e.QuoteAmountOutWithoutLpFee),
		anchor.U64("user_quote_amount_out", &e.UserQuoteAmountOut),
		anchor.Pubkey("pool", &e.Pool),
		anchor.Pubkey("user", &e.User),
		anchor.Pubkey("user_base_token_account", &e.UserBaseTokenAccount),
		anchor.Pubkey("user_quote_token_account", &e.UserQuoteTokenAccount),
		anchor.Pubkey("protocol_fee_recipient", &e.ProtocolFeeRecipient),
		anchor.Pubkey("protocol_fee_recipient_token_account", &e.ProtocolFeeRecipientTokenAccount),
		anchor.Pubkey("coin_creator", &e.CoinCreator),
		anchor.U64("coin_creator_fee_basis_points", &e.CoinCreatorFeeBasisPoints),
		anchor.U64("coin_creator_fee", &e.CoinCreatorFee),
	}
}

func (SellEvent) Discriminator() anchor.Discriminator { return SellEventDiscriminator }

func (e SellEvent) MarshalWithEncoder(enc *bin.Encoder) error {
	return anchor.EncodeFields(enc, e.layout())
}

func (e *SellEvent) UnmarshalWithDecoder(dec *bin.Decoder) error {
	return anchor.DecodeFields(dec, e.layout())
}

// CreatePoolEvent is emitted when a new pool is initialized.
type CreatePoolEvent struct {
	Timestamp             int64            `json:"timestamp"`
	Index                 uint16           `json:"index"`
	Creator               solana.PublicKey `json:"creator"`
	BaseMint              solana.PublicKey `json:"base_mint"`
	QuoteMint             solana.PublicKey `json:"quote_mint"`
	BaseMintDecimals      uint8            `json:"base_mint_decimals"`
	QuoteMintDecimals     uint8            `json:"quote_mint_decimals"`
	BaseAmountIn          uint64           `json:"base_amount_in"`
	QuoteAmountIn         uint64           `json:"quote_amount_in"`
	PoolBaseAmount        uint64           `json:"pool_base_amount"`
	PoolQuoteAmount       uint64           `json:"pool_quote_amount"`
	MinimumLiquidity      uint64           `json:"minimum_liquidity"`
	InitialLiquidity      uint64           `json:"initial_liquidity"`
	LpTokenAmountOut      uint64           `json:"lp_token_amount_out"`
	PoolBump              uint8            `json:"pool_bump"`
	Pool                  solana.PublicKey `json:"pool"`
	LpMint                solana.PublicKey `json:"lp_mint"`
	UserBaseTokenAccount  solana.PublicKey `json:"user_base_token_account"`
	UserQuoteTokenAccount solana.PublicKey `json:"user_quote_token_account"`
	CoinCreator           solana.PublicKey `json:"coin_creator"`
}

func (e *CreatePoolEvent) layout() []anchor.Field {
	return []anchor.Field{
		anchor.I64("timestamp", &e.Timestamp),
		anchor.U16("index", &e.Index),
		anchor.Pubkey("creator", &e.Creator),
		anchor.Pubkey("base_mint", &e.BaseMint),
		anchor.Pubkey("quote_mint", &e.QuoteMint),
		anchor.U8("base_mint_decimals", &e.BaseMintDecimals),
		anchor.U8("quote_mint_decimals", &e.QuoteMintDecimals),
		anchor.U64("base_amount_in", &e.BaseAmountIn),
		anchor.U64("quote_amount_in", &e.QuoteAmountIn),
		anchor.U64("pool_base_amount", &e.PoolBaseAmount),
		anchor.U64("pool_quote_amount", &e.PoolQuoteAmount),
		anchor.U64("minimum_liquidity", &e.MinimumLiquidity),
		anchor.U64("initial_liquidity", &e.InitialLiquidity),
		anchor.U64("lp_token_amount_out", &e.LpTokenAmountOut),
		anchor.U8("pool_bump", &e.PoolBump),
		anchor.Pubkey("pool", &e.Pool),
		anchor.Pubkey("lp_mint", &e.LpMint),
		anchor.Pubkey("user_base_token_account", &e.UserBaseTokenAccount),
		anchor.Pubkey("user_quote_token_account", &e.UserQuoteTokenAccount),
		anchor.Pubkey("coin_creator", &e.CoinCreator),
	}
}

func (CreatePoolEvent) Discriminator() anchor.Discriminator { return CreatePoolEventDiscriminator }

func (e CreatePoolEvent) MarshalWithEncoder(enc *bin.Encoder) error {
	return anchor.EncodeFields(enc, e.layout())
}

func (e *CreatePoolEvent) UnmarshalWithDecoder(dec *bin.Decoder) error {
	return anchor.DecodeFields(dec, e.layout())
}
