package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register(10, nil)
	require.NoError(t, err)
	assert.True(t, hub.IsOnline(10))

	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(10))

	_ = hub.Shutdown(context.Background())
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(10, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(10, nil)
	assert.Error(t, err)

	// A different user is unaffected
	_, err = hub.Register(11, nil)
	assert.NoError(t, err)

	_ = hub.Shutdown(context.Background())
}

func TestHub_BroadcastReachesOnlyTargetUser(t *testing.T) {
	hub := NewHub()

	target, err := hub.Register(10, nil)
	require.NoError(t, err)
	other, err := hub.Register(11, nil)
	require.NoError(t, err)

	hub.Broadcast(10, `{"type":"reply_created"}`)

	select {
	case msg := <-target.Send:
		assert.JSONEq(t, `{"type":"reply_created"}`, string(msg))
	default:
		t.Fatal("target client received nothing")
	}

	select {
	case <-other.Send:
		t.Fatal("other user should not receive targeted message")
	default:
	}

	_ = hub.Shutdown(context.Background())
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub()

	a, err := hub.Register(10, nil)
	require.NoError(t, err)
	b, err := hub.Register(11, nil)
	require.NoError(t, err)

	hub.BroadcastAll(`{"type":"comment_created"}`)

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			assert.Contains(t, string(msg), "comment_created")
		default:
			t.Fatal("client received nothing")
		}
	}

	_ = hub.Shutdown(context.Background())
}
