package event

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PhonesBot_Go/internal/domain"
)

type mockBus struct {
	mu           sync.Mutex
	calls        []Event
	failCount    int32
	shouldFail   func(attempt int) bool
	publishDelay time.Duration
}

func (m *mockBus) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	m.calls = append(m.calls, event)
	callCount := len(m.calls)
	m.mu.Unlock()

	if m.publishDelay > 0 {
		time.Sleep(m.publishDelay)
	}

	if m.shouldFail != nil && m.shouldFail(callCount) {
		atomic.AddInt32(&m.failCount, 1)
		return errors.New("mock publish error")
	}
	return nil
}

func (m *mockBus) Subscribe(Type, Handler) {}

func (m *mockBus) GetCalls() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event{}, m.calls...)
}

func (m *mockBus) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func deadLetterPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "deadletter.jsonl")
}

func drawnEvent(userID string, itemID int64) Event {
	return NewCardDrawnEvent(domain.Item{ID: itemID, UserID: userID, Name: "Nokia 3310", Rarity: 0, Price: 900})
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	path := deadLetterPath(t)
	bus := &mockBus{}

	rp, err := NewResilientPublisher(bus, 3, 100*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	evt := drawnEvent("1", 10)
	rp.PublishWithRetry(context.Background(), evt)

	require.Equal(t, 1, bus.CallCount(), "first attempt is synchronous")
	assert.Equal(t, CardDrawn, bus.GetCalls()[0].Type)

	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResilientPublisher_RetrySuccess(t *testing.T) {
	path := deadLetterPath(t)
	bus := &mockBus{shouldFail: func(attempt int) bool { return attempt == 1 }}

	rp, err := NewResilientPublisher(bus, 3, 100*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), NewRewardClaimedEvent("7", domain.RewardSourceDaily, 100))

	assert.Eventually(t, func() bool { return bus.CallCount() == 2 }, time.Second, 10*time.Millisecond,
		"initial attempt plus one retry")

	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResilientPublisher_RetryExhaustion(t *testing.T) {
	path := deadLetterPath(t)
	bus := &mockBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), drawnEvent("1", 456))

	var entries []DeadLetterEntry
	require.Eventually(t, func() bool {
		entries, err = ReadDeadLetters(path)
		return err == nil && len(entries) == 1
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, 4, bus.CallCount(), "initial attempt plus three retries")
	assert.Equal(t, CardDrawn, entries[0].Event.Type)
	assert.Equal(t, 4, entries[0].Attempts, "attempts counts the failed initial publish")
	assert.Equal(t, "mock publish error", entries[0].LastError)

	payload, err := DecodePayload[domain.CardDrawnPayload](entries[0].Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, int64(456), payload.ItemID)
	assert.Equal(t, "Nokia 3310", payload.ItemName)
}

func TestResilientPublisher_QueueOverflow(t *testing.T) {
	path := deadLetterPath(t)
	bus := &mockBus{
		shouldFail:   func(int) bool { return true },
		publishDelay: 50 * time.Millisecond,
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 5),
		maxRetries: 3,
		retryDelay: 50 * time.Millisecond,
		shutdown:   make(chan struct{}),
	}
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	rp.deadLetter = dl

	rp.wg.Add(1)
	go rp.retryWorker()
	defer rp.Shutdown(context.Background())

	for i := range 10 {
		rp.PublishWithRetry(context.Background(), NewItemSoldEvent("1", 0, 1, int64(i)))
	}

	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	require.NotEmpty(t, entries, "a full queue dead-letters immediately")
	assert.Equal(t, ItemSold, entries[0].Event.Type)
}

func TestResilientPublisher_GracefulShutdown(t *testing.T) {
	path := deadLetterPath(t)

	var failures int32
	bus := &mockBus{
		shouldFail: func(int) bool { return atomic.AddInt32(&failures, 1) <= 2 },
	}

	rp, err := NewResilientPublisher(bus, 5, 50*time.Millisecond, path)
	require.NoError(t, err)

	for i := range 3 {
		rp.PublishWithRetry(context.Background(),
			NewWagerSettledEvent("1", &domain.WagerResult{Won: i%2 == 0, Stake: 100}))
	}

	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, rp.Shutdown(ctx))
	assert.GreaterOrEqual(t, bus.CallCount(), 3, "queued events are processed during shutdown")
}

func TestResilientPublisher_ExponentialBackoff(t *testing.T) {
	path := deadLetterPath(t)

	var (
		attemptMu sync.Mutex
		attempts  []time.Time
	)
	bus := &mockBus{
		shouldFail: func(attempt int) bool {
			attemptMu.Lock()
			attempts = append(attempts, time.Now())
			attemptMu.Unlock()
			return attempt < 4
		},
	}

	baseDelay := 100 * time.Millisecond
	rp, err := NewResilientPublisher(bus, 5, baseDelay, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), NewRewardClaimedEvent("1", domain.RewardSourceFarm, 2400))

	require.Eventually(t, func() bool { return bus.CallCount() >= 3 }, 2*time.Second, 10*time.Millisecond)

	attemptMu.Lock()
	defer attemptMu.Unlock()
	assert.InDelta(t, baseDelay.Milliseconds(), attempts[1].Sub(attempts[0]).Milliseconds(), 50,
		"first retry waits the base delay")
	assert.InDelta(t, (2 * baseDelay).Milliseconds(), attempts[2].Sub(attempts[1]).Milliseconds(), 50,
		"second retry doubles it")
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	path := deadLetterPath(t)

	bus := &mockBus{}
	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	const (
		senders   = 10
		perSender = 5
	)

	var wg sync.WaitGroup
	for i := range senders {
		wg.Add(1)
		go func(sender int) {
			defer wg.Done()
			for j := range perSender {
				rp.PublishWithRetry(context.Background(),
					NewPointsTransferredEvent(string(rune('a'+sender)), "z", int64(j+1)))
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, senders*perSender, bus.CallCount())
}

func TestResilientPublisher_ShutdownDeadLettersPending(t *testing.T) {
	path := deadLetterPath(t)
	bus := &mockBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), NewPerkPurchasedEvent("1", domain.Perks[domain.PerkFarm]))
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, rp.Shutdown(context.Background()))
	require.NoError(t, rp.Shutdown(context.Background()), "second shutdown is a no-op")

	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
	assert.Equal(t, PerkPurchased, entries[0].Event.Type)
	assert.Equal(t, "mock publish error", entries[0].LastError)

	payload, err := DecodePayload[domain.PerkPurchasedPayload](entries[0].Event.Payload)
	require.NoError(t, err)
	assert.Equal(t, domain.PerkFarm, payload.Perk)

	// after shutdown events go straight to the closed writer path and must not panic
	rp.PublishWithRetry(context.Background(), Event{Type: PerkPurchased})
}

func TestNewResilientPublisher_BadPath(t *testing.T) {
	_, err := NewResilientPublisher(&mockBus{}, 1, time.Millisecond, filepath.Join(t.TempDir(), "missing", "dir", "dl.jsonl"))
	assert.Error(t, err)
}

func TestReadDeadLetters(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		entries, err := ReadDeadLetters(filepath.Join(t.TempDir(), "none.jsonl"))
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("corrupt line", func(t *testing.T) {
		path := deadLetterPath(t)
		dl, err := NewDeadLetterWriter(path)
		require.NoError(t, err)
		require.NoError(t, dl.Write(drawnEvent("1", 1), 2, errors.New("boom")))
		require.NoError(t, dl.Close())

		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
		require.NoError(t, err)
		_, err = f.WriteString("\n{not json\n")
		require.NoError(t, err)
		require.NoError(t, f.Close())

		entries, err := ReadDeadLetters(path)
		assert.ErrorContains(t, err, "dead-letter line 3")
		require.Len(t, entries, 1, "entries before the bad line are kept")
		assert.Equal(t, "boom", entries[0].LastError)
	})
}
