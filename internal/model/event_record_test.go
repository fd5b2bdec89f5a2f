package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
)

type sampleEvent struct {
	Mint   solana.PublicKey `json:"mint"`
	Amount uint64           `json:"amount"`
}

func TestEventRecordRendered(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	rec := EventRecord{Slot: 1, Name: "TradeEvent", Event: &sampleEvent{Mint: mint, Amount: 5}}

	got := rec.Rendered()
	if !strings.HasPrefix(got, "TradeEvent{") {
		t.Fatalf("unexpected prefix: %s", got)
	}
	if !strings.Contains(got, "Mint:"+mint.String()) {
		t.Fatalf("mint should render as base58: %s", got)
	}
	if !strings.Contains(got, "Amount:5") {
		t.Fatalf("amount missing: %s", got)
	}
}

func TestNotificationJSON(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")
	n := Notification{
		Signature: "abc",
		Slot:      100,
		Records:   []EventRecord{{Slot: 100, Name: "BuyEvent", Family: "pump_amm", Event: &sampleEvent{Mint: mint}}},
	}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	records, ok := decoded["records"].([]interface{})
	if !ok || len(records) != 1 {
		t.Fatalf("records missing: %s", data)
	}
	event := records[0].(map[string]interface{})["event"].(map[string]interface{})
	if event["mint"] != mint.String() {
		t.Fatalf("mint should be base58 string: %v", event["mint"])
	}
	if got := n.Rendered(); len(got) != 1 || !strings.HasPrefix(got[0], "BuyEvent{") {
		t.Fatalf("rendered mismatch: %v", got)
	}
}
