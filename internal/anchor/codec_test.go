package anchor_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpScope/internal/anchor"
	"pumpScope/internal/pump"
)

func TestDiscriminatorMatchesExactly(t *testing.T) {
	d := pump.CreateEventDiscriminator
	assert.True(t, d.Matches(d[:]))
	assert.False(t, d.Matches(d[:7]))
	assert.False(t, d.Matches(append(d[:], 0)))
	assert.False(t, d.Matches(pump.CompleteEventDiscriminator[:]))
	assert.Equal(t, "1b72a94ddeeb6376", d.String())
}

func TestSplit(t *testing.T) {
	_, _, ok := anchor.Split([]byte{1, 2, 3, 4, 5, 6, 7})
	assert.False(t, ok)

	tag, payload, ok := anchor.Split([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.True(t, ok)
	assert.Len(t, tag, 8)
	assert.Empty(t, payload)
}

func createPayload(t *testing.T) []byte {
	t.Helper()
	record, err := anchor.Encode(&pump.CreateEvent{Name: "name", Symbol: "SYM", URI: "ipfs://x", Timestamp: 5})
	require.NoError(t, err)
	_, payload, _ := anchor.Split(record)
	return payload
}

func TestDecodeTruncatedPayload(t *testing.T) {
	codec := codecByName(t, "CreateEvent")
	payload := createPayload(t)

	for n := 0; n < len(payload); n++ {
		_, err := codec.Decode(payload[:n])
		require.ErrorIs(t, err, anchor.ErrMalformed, "length %d", n)
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	codec := codecByName(t, "CreateEvent")
	_, err := codec.Decode(append(createPayload(t), 0))
	assert.ErrorIs(t, err, anchor.ErrMalformed)
}

func TestDecodeInvalidString(t *testing.T) {
	codec := codecByName(t, "CreateEvent")
	payload := createPayload(t)

	invalid := append([]byte(nil), payload...)
	// first string is "name": 4-byte length, then bytes
	invalid[4] = 0xff
	_, err := codec.Decode(invalid)
	assert.ErrorIs(t, err, anchor.ErrMalformed)

	huge := append([]byte(nil), payload...)
	binary.LittleEndian.PutUint32(huge[:4], 0xffffffff)
	_, err = codec.Decode(huge)
	assert.ErrorIs(t, err, anchor.ErrMalformed)
}

func TestDecodeInvalidBool(t *testing.T) {
	codec := codecByName(t, "TradeEvent")
	record, err := anchor.Encode(&pump.TradeEvent{IsBuy: true})
	require.NoError(t, err)
	_, payload, _ := anchor.Split(record)

	// mint(32) + sol_amount(8) + token_amount(8)
	payload[48] = 2
	_, err = codec.Decode(payload)
	assert.ErrorIs(t, err, anchor.ErrMalformed)
}

func TestDecodeWithoutConstructor(t *testing.T) {
	_, err := anchor.Codec{Name: "Empty"}.Decode(nil)
	assert.Error(t, err)
}

func TestEventDiscriminator(t *testing.T) {
	assert.Equal(t, pump.SellEventDiscriminator, anchor.EventDiscriminator("SellEvent"))
	assert.NotEqual(t, pump.SellEventDiscriminator, anchor.EventDiscriminator("sellEvent"))
}
