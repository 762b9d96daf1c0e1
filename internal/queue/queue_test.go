package queue

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishWithoutSubscribers(t *testing.T) {
	q := NewInMemoryQueue()

	err := q.Publish("nobody_home", "payload")
	assert.Error(t, err)
}

func TestPublishDeliversPayload(t *testing.T) {
	q := NewInMemoryQueue()
	got := make(chan any, 1)

	require.NoError(t, q.Subscribe("greetings", func(payload any) error {
		got <- payload
		return nil
	}))
	require.NoError(t, q.Publish("greetings", "hello"))

	select {
	case payload := <-got:
		assert.Equal(t, "hello", payload)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}
}

func TestPublishRetriesUntilSuccess(t *testing.T) {
	q := NewInMemoryQueue()
	var attempts atomic.Int32
	done := make(chan struct{})

	require.NoError(t, q.Subscribe("flaky", func(payload any) error {
		if attempts.Add(1) == 1 {
			return errors.New("transient failure")
		}
		close(done)
		return nil
	}))
	require.NoError(t, q.Publish("flaky", 7))

	select {
	case <-done:
		assert.Equal(t, int32(2), attempts.Load())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for retry")
	}
}

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	q := NewInMemoryQueue()
	var delivered atomic.Int32
	done := make(chan struct{}, 2)

	handler := func(payload any) error {
		delivered.Add(1)
		done <- struct{}{}
		return nil
	}
	require.NoError(t, q.Subscribe("fanout", handler))
	require.NoError(t, q.Subscribe("fanout", handler))
	require.NoError(t, q.Publish("fanout", "x"))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for fanout")
		}
	}
	assert.Equal(t, int32(2), delivered.Load())
}
