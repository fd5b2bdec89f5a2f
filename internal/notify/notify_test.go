package notify

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pumpScope/internal/aggregate"
	"pumpScope/internal/anchor"
	"pumpScope/internal/model"
	"pumpScope/internal/pump"
)

func TestJsonlSinkAppendsOneLinePerNotification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "events.jsonl")
	sink := NewJsonlSink(path)

	require.NoError(t, sink.Notify(model.Notification{Signature: "a", Slot: 1}))
	require.NoError(t, sink.Notify(model.Notification{Signature: "b", Slot: 2}))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var got []model.Notification
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var n model.Notification
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &n))
		got = append(got, n)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Signature)
	assert.Equal(t, uint64(2), got[1].Slot)
}

func TestJsonlWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewJsonlWriter(&buf)
	require.NoError(t, w.Write(model.DecodeError{Line: 3, Error: "bad"}, map[string]int{"x": 1}))
	require.NoError(t, w.Write())
	assert.Equal(t, "{\"line\":3,\"error\":\"bad\"}\n{\"x\":1}\n", buf.String())
}

type memorySink struct {
	mu   sync.Mutex
	got  []model.Notification
	fail int
}

func (m *memorySink) Notify(n model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail > 0 {
		m.fail--
		return errors.New("disk full")
	}
	m.got = append(m.got, n)
	return nil
}

func (m *memorySink) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.got)
}

func tradeLine(t *testing.T) string {
	t.Helper()
	record, err := anchor.Encode(&pump.TradeEvent{SolAmount: 10, IsBuy: true})
	require.NoError(t, err)
	return anchor.ProgramDataLine(record)
}

func (m *memorySink) last() model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.got) == 0 {
		return model.Notification{}
	}
	return m.got[len(m.got)-1]
}

func TestForwardDeliversAndSurvivesSinkErrors(t *testing.T) {
	agg := aggregate.NewAggregator(pump.Registry(), nil)
	sink := &memorySink{fail: 1}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Forward(ctx, agg, sink, nil) }()

	line := tradeLine(t)
	// Send only reaches subscribers registered before it, so keep handling
	// until the forwarder has subscribed and the failing first delivery is
	// behind us.
	require.Eventually(t, func() bool {
		_ = agg.Handle([]string{line}, 1, "sig")
		return sink.count() > 0
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, agg.Handle([]string{line}, 2, "sig"))
	want := len(agg.Records("sig"))
	require.Eventually(t, func() bool {
		return len(sink.last().Records) == want
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("forward did not stop")
	}

	last := sink.last()
	assert.Equal(t, "sig", last.Signature)
	assert.Equal(t, uint64(2), last.Slot)
	assert.Equal(t, "TradeEvent", last.Records[want-1].Name)
}

func TestForwarderKeepsNotificationsPublishedBeforeRun(t *testing.T) {
	agg := aggregate.NewAggregator(pump.Registry(), nil)
	sink := &memorySink{}
	fwd := NewForwarder(agg, sink, nil)

	require.NoError(t, agg.Handle([]string{tradeLine(t)}, 3, "early"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fwd.Run(ctx) }()

	require.Eventually(t, func() bool { return sink.count() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "early", sink.last().Signature)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
