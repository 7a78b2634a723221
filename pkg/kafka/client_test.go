package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"fu-news-go/pkg/events"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyHandler struct {
	failures int
	calls    int
}

func (h *flakyHandler) Handle(context.Context, events.ArticleEvent) error {
	h.calls++
	if h.calls <= h.failures {
		return errors.New("temporary")
	}
	return nil
}

func encode(t *testing.T, ev events.ArticleEvent) []byte {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return b
}

func TestHandleMessage(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		wantOK    bool
		wantCalls int
	}{
		{name: "first try", failures: 0, wantOK: true, wantCalls: 1},
		{name: "recovers on retry", failures: 2, wantOK: true, wantCalls: 3},
		{name: "gives up", failures: 5, wantOK: false, wantCalls: maxAttempts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &flakyHandler{failures: tt.failures}
			ok := handleMessage(context.Background(), encode(t, events.ArticleEvent{Type: events.ArticleCreated, ArticleID: 1}), h)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCalls, h.calls)
		})
	}
}

func TestHandleMessage_Malformed(t *testing.T) {
	h := &flakyHandler{}
	assert.False(t, handleMessage(context.Background(), []byte("{not json"), h))
	assert.Equal(t, 0, h.calls)
}

// scriptedReader 依次返回预设的结果，用完后取消 ctx。
type scriptedReader struct {
	mu      sync.Mutex
	steps   []interface{} // error 或 kafka.Message
	cancel  context.CancelFunc
	fetches int
	commits []kafka.Message
}

func (r *scriptedReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches++
	if len(r.steps) == 0 {
		r.cancel()
		return kafka.Message{}, ctx.Err()
	}
	step := r.steps[0]
	r.steps = r.steps[1:]
	if err, ok := step.(error); ok {
		return kafka.Message{}, err
	}
	return step.(kafka.Message), nil
}

func (r *scriptedReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, msgs...)
	return nil
}

func shortBackoff(t *testing.T, lo, hi time.Duration) {
	t.Helper()
	savedMin, savedMax := fetchBackoffMin, fetchBackoffMax
	fetchBackoffMin, fetchBackoffMax = lo, hi
	t.Cleanup(func() { fetchBackoffMin, fetchBackoffMax = savedMin, savedMax })
}

func TestConsume_KeepsReadingAfterFetchErrors(t *testing.T) {
	shortBackoff(t, time.Millisecond, 4*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	broker := errors.New("broker unreachable")
	r := &scriptedReader{
		cancel: cancel,
		steps: []interface{}{
			broker,
			broker,
			kafka.Message{Offset: 1, Value: encode(t, events.ArticleEvent{Type: events.ArticleCreated, ArticleID: 1})},
			broker,
			kafka.Message{Offset: 2, Value: encode(t, events.ArticleEvent{Type: events.ArticleUpdated, ArticleID: 1})},
		},
	}
	h := &flakyHandler{}

	consume(ctx, r, h)

	assert.Equal(t, 2, h.calls)
	require.Len(t, r.commits, 2)
	assert.Equal(t, int64(1), r.commits[0].Offset)
	assert.Equal(t, int64(2), r.commits[1].Offset)
	assert.Equal(t, 6, r.fetches)
}

type failingReader struct{}

func (failingReader) FetchMessage(context.Context) (kafka.Message, error) {
	return kafka.Message{}, errors.New("broker unreachable")
}

func (failingReader) CommitMessages(context.Context, ...kafka.Message) error { return nil }

func TestConsume_CancelDuringBackoff(t *testing.T) {
	shortBackoff(t, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		consume(ctx, failingReader{}, &flakyHandler{})
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consume did not return after cancel")
	}
}
