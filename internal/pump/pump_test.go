package pump

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpScope/internal/anchor"
)

func key(b byte) solana.PublicKey {
	return solana.PublicKeyFromBytes(bytes.Repeat([]byte{b}, solana.PublicKeyLength))
}

func TestDiscriminatorsMatchAnchorDerivation(t *testing.T) {
	for _, codec := range Registry() {
		assert.Equal(t, anchor.EventDiscriminator(codec.Name), codec.Discriminator, codec.Name)
		assert.Equal(t, codec.Discriminator, codec.New().Discriminator(), codec.Name)
	}
}

func TestRegistryOrder(t *testing.T) {
	var names []string
	seen := make(map[anchor.Discriminator]string)
	for _, codec := range Registry() {
		names = append(names, codec.Name)
		if other, ok := seen[codec.Discriminator]; ok {
			t.Fatalf("%s shares discriminator with %s", codec.Name, other)
		}
		seen[codec.Discriminator] = codec.Name
	}
	assert.Equal(t, []string{"CreateEvent", "CompleteEvent", "TradeEvent", "BuyEvent", "SellEvent", "CreatePoolEvent"}, names)
}

func TestEventRoundTrip(t *testing.T) {
	events := []anchor.Event{
		&CreateEvent{
			Name:                 "Doge Two",
			Symbol:               "DOGE2",
			URI:                  "https://example.com/meta.json",
			Mint:                 key(1),
			BondingCurve:         key(2),
			User:                 key(3),
			Creator:              key(4),
			Timestamp:            1717000000,
			VirtualTokenReserves: 1_073_000_000_000_000,
			VirtualSolReserves:   30_000_000_000,
			RealTokenReserves:    793_100_000_000_000,
			TokenTotalSupply:     1_000_000_000_000_000,
		},
		&CreateEvent{},
		&CompleteEvent{User: key(5), Mint: key(6), BondingCurve: key(7), Timestamp: -1},
		&TradeEvent{
			Mint:                  key(8),
			SolAmount:             1_500_000_000,
			TokenAmount:           42,
			IsBuy:                 true,
			User:                  key(9),
			Timestamp:             1717000001,
			FeeRecipient:          key(10),
			FeeBasisPoints:        95,
			Fee:                   14_250_000,
			Creator:               key(11),
			CreatorFeeBasisPoints: 5,
			CreatorFee:            750_000,
		},
		&BuyEvent{
			Timestamp:         1717000002,
			BaseAmountOut:     1000,
			MaxQuoteAmountIn:  2000,
			QuoteAmountIn:     1990,
			LpFeeBasisPoints:  20,
			Pool:              key(12),
			User:              key(13),
			CoinCreator:       key(14),
			CoinCreatorFee:    3,
			UserQuoteAmountIn: 2001,
		},
		&SellEvent{
			Timestamp:                  1717000003,
			BaseAmountIn:               500,
			MinQuoteAmountOut:          400,
			QuoteAmountOutWithoutLpFee: 410,
			Pool:                       key(15),
			ProtocolFeeRecipient:       key(16),
			CoinCreatorFeeBasisPoints:  5,
		},
		&CreatePoolEvent{
			Timestamp:         1717000004,
			Index:             65535,
			Creator:           key(17),
			BaseMint:          key(18),
			QuoteMint:         key(22),
			BaseMintDecimals:  6,
			QuoteMintDecimals: 9,
			PoolBump:          255,
			Pool:              key(19),
			LpMint:            key(20),
			CoinCreator:       key(21),
		},
	}

	codecs := make(map[anchor.Discriminator]anchor.Codec)
	for _, codec := range Registry() {
		codecs[codec.Discriminator] = codec
	}

	for _, ev := range events {
		record, err := anchor.Encode(ev)
		require.NoError(t, err)

		tag, payload, ok := anchor.Split(record)
		require.True(t, ok)
		codec, ok := codecs[ev.Discriminator()]
		require.True(t, ok)
		require.True(t, codec.Matches(tag))

		decoded, err := codec.Decode(payload)
		require.NoError(t, err, codec.Name)
		assert.Equal(t, ev, decoded, codec.Name)
	}
}

func TestWrongVariantFailsClosed(t *testing.T) {
	record, err := anchor.Encode(&CompleteEvent{User: key(1), Mint: key(2), BondingCurve: key(3), Timestamp: 7})
	require.NoError(t, err)
	_, payload, _ := anchor.Split(record)

	for _, codec := range Registry() {
		if codec.Name == "CompleteEvent" {
			continue
		}
		_, err := codec.Decode(payload)
		assert.ErrorIs(t, err, anchor.ErrMalformed, codec.Name)
	}
}
