package aggregate

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpScope/internal/anchor"
	"pumpScope/internal/model"
	"pumpScope/internal/pump"
)

func dataLine(t *testing.T, ev anchor.Event) string {
	t.Helper()
	record, err := anchor.Encode(ev)
	require.NoError(t, err)
	return anchor.ProgramDataLine(record)
}

func subscribe(agg *Aggregator) (chan model.Notification, func()) {
	ch := make(chan model.Notification, 16)
	sub := agg.Subscribe(ch)
	return ch, sub.Unsubscribe
}

func expectNone(t *testing.T, ch chan model.Notification) {
	t.Helper()
	select {
	case n := <-ch:
		t.Fatalf("unexpected notification: %+v", n)
	default:
	}
}

func TestHandleCreateEvent(t *testing.T) {
	agg := NewAggregator(pump.Registry(), nil)
	ch, stop := subscribe(agg)
	defer stop()

	create := &pump.CreateEvent{
		Name:      "Token",
		Symbol:    "TKN",
		URI:       "https://example.com/t.json",
		Mint:      solana.PublicKeyFromBytes(bytes.Repeat([]byte{7}, 32)),
		Timestamp: 1717171717,
	}
	err := agg.Handle([]string{dataLine(t, create)}, 100, "abc")
	require.NoError(t, err)

	records := agg.Records("abc")
	require.Len(t, records, 1)
	assert.Equal(t, uint64(100), records[0].Slot)
	assert.Equal(t, "CreateEvent", records[0].Name)
	assert.Equal(t, pump.FamilyPump, records[0].Family)
	assert.Equal(t, create, records[0].Event)

	n := <-ch
	assert.Equal(t, "abc", n.Signature)
	assert.Equal(t, records, n.Records)
}

func TestHandleEmptyLogs(t *testing.T) {
	agg := NewAggregator(pump.Registry(), nil)
	ch, stop := subscribe(agg)
	defer stop()

	require.NoError(t, agg.Handle(nil, 5, "sig"))
	require.NoError(t, agg.Handle([]string{}, 5, "sig"))

	assert.Equal(t, 0, agg.Len())
	assert.Nil(t, agg.Records("sig"))
	expectNone(t, ch)
}

func TestHandleNoMatchLeavesMapUntouched(t *testing.T) {
	agg := NewAggregator(pump.Registry(), nil)
	ch, stop := subscribe(agg)
	defer stop()

	logs := []string{
		"Program log: Instruction: Buy",
		"Program data: %%%",
		anchor.ProgramDataLine([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9}),
	}
	require.NoError(t, agg.Handle(logs, 5, "sig"))

	assert.Equal(t, 0, agg.Len())
	expectNone(t, ch)
}

func TestHandleOneRecordPerVariantInRegistryOrder(t *testing.T) {
	agg := NewAggregator(pump.Registry(), nil)

	buy := &pump.BuyEvent{BaseAmountOut: 10}
	older := &pump.TradeEvent{SolAmount: 1}
	newer := &pump.TradeEvent{SolAmount: 2}
	logs := []string{dataLine(t, buy), dataLine(t, older), dataLine(t, newer)}

	require.NoError(t, agg.Handle(logs, 9, "sig"))

	records := agg.Records("sig")
	require.Len(t, records, 2)
	assert.Equal(t, "TradeEvent", records[0].Name)
	assert.Equal(t, newer, records[0].Event)
	assert.Equal(t, "BuyEvent", records[1].Name)
	assert.Equal(t, pump.FamilyPumpAMM, records[1].Family)
}

func TestHandleNotificationIsGrowingSnapshot(t *testing.T) {
	agg := NewAggregator(pump.Registry(), nil)
	ch, stop := subscribe(agg)
	defer stop()

	require.NoError(t, agg.Handle([]string{dataLine(t, &pump.CreateEvent{Name: "a"})}, 1, "sig"))
	first := <-ch
	require.Len(t, first.Records, 1)

	require.NoError(t, agg.Handle([]string{dataLine(t, &pump.CompleteEvent{Timestamp: 3})}, 2, "sig"))
	second := <-ch
	require.Len(t, second.Records, 2)
	assert.Equal(t, "CreateEvent", second.Records[0].Name)
	assert.Equal(t, uint64(1), second.Records[0].Slot)
	assert.Equal(t, "CompleteEvent", second.Records[1].Name)
	assert.Equal(t, uint64(2), second.Slot)

	// earlier snapshots are not affected by later appends
	assert.Len(t, first.Records, 1)
}

func TestHandleConcurrentSignatures(t *testing.T) {
	agg := NewAggregator(pump.Registry(), nil)

	const workers, perWorker = 8, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ev := &pump.TradeEvent{SolAmount: uint64(w*perWorker + i)}
				record, err := anchor.Encode(ev)
				if err != nil {
					t.Error(err)
					return
				}
				sig := fmt.Sprintf("w%d-%d", w, i)
				if err := agg.Handle([]string{anchor.ProgramDataLine(record)}, uint64(i), sig); err != nil {
					t.Error(err)
				}
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, workers*perWorker, agg.Len())
	for w := 0; w < workers; w++ {
		for i := 0; i < perWorker; i++ {
			records := agg.Records(fmt.Sprintf("w%d-%d", w, i))
			require.Len(t, records, 1)
			assert.Equal(t, uint64(i), records[0].Slot)
			assert.Equal(t, uint64(w*perWorker+i), records[0].Event.(*pump.TradeEvent).SolAmount)
		}
	}
}

func TestHandleBatchCancelled(t *testing.T) {
	agg := NewAggregator(pump.Registry(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := agg.HandleBatch(ctx, model.TxBatch{Slot: 1, Signature: "sig", Logs: []string{dataLine(t, &pump.CreateEvent{})}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, agg.Len())
}

func TestQueueDeliversToAggregator(t *testing.T) {
	agg := NewAggregator(pump.Registry(), nil)
	ch, stop := subscribe(agg)
	defer stop()

	queue := NewQueue(agg, 4, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- queue.Run(ctx) }()

	batch := model.TxBatch{Slot: 77, Signature: "queued", Logs: []string{dataLine(t, &pump.SellEvent{BaseAmountIn: 5})}}
	require.NoError(t, queue.HandleBatch(context.Background(), batch))

	select {
	case n := <-ch:
		assert.Equal(t, "queued", n.Signature)
		assert.Equal(t, uint64(77), n.Slot)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestQueueHandleBatchBlocksUntilCancelled(t *testing.T) {
	queue := NewQueue(NewAggregator(pump.Registry(), nil), 1, nil)
	require.NoError(t, queue.HandleBatch(context.Background(), model.TxBatch{Signature: "a"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := queue.HandleBatch(ctx, model.TxBatch{Signature: "b"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStalledSubscriberBlocksHandleUntilUnsubscribed(t *testing.T) {
	agg := NewAggregator(pump.Registry(), nil)
	stalled := make(chan model.Notification)
	sub := agg.Subscribe(stalled)

	line := dataLine(t, &pump.TradeEvent{IsBuy: true})
	done := make(chan error, 1)
	go func() { done <- agg.Handle([]string{line}, 1, "abc") }()

	select {
	case <-done:
		t.Fatal("Handle returned while the subscriber was not draining")
	case <-time.After(50 * time.Millisecond):
	}

	sub.Unsubscribe()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Handle still blocked after unsubscribe")
	}
	assert.Len(t, agg.Records("abc"), 1)
}
