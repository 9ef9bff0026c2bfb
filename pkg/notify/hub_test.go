package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testListener struct {
	events []Event
	err    error
}

func (l *testListener) Receive(ev Event) error {
	if l.err != nil {
		return l.err
	}
	l.events = append(l.events, ev)
	return nil
}

func startHub(t *testing.T, historyLen int) *Hub {
	t.Helper()
	hub := New(historyLen)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Start(ctx)
	return hub
}

func TestDispatchReachesListeners(t *testing.T) {
	hub := startHub(t, 5)
	l := &testListener{}
	hub.AddListener(l)
	hub.Dispatch(KindSettingsChanged, "crypto-at-rest")
	hub.Sync()

	require.Len(t, l.events, 1)
	ev := l.events[0]
	assert.Equal(t, KindSettingsChanged, ev.Kind)
	assert.Equal(t, "crypto-at-rest", ev.Subject)
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.Date.IsZero())
}

func TestHistoryPlayback(t *testing.T) {
	hub := startHub(t, 5)
	hub.Dispatch(KindAccountsChanged, "john")
	hub.Dispatch(KindSettingsChanged, "crypto-at-rest")
	hub.Sync()

	// A listener added after the fact receives the buffered events in order.
	l := &testListener{}
	hub.AddListener(l)
	hub.Sync()

	require.Len(t, l.events, 2)
	assert.Equal(t, KindAccountsChanged, l.events[0].Kind)
	assert.Equal(t, KindSettingsChanged, l.events[1].Kind)
}

func TestHistoryBounded(t *testing.T) {
	hub := startHub(t, 2)
	hub.Dispatch(KindAccountsChanged, "one")
	hub.Dispatch(KindAccountsChanged, "two")
	hub.Dispatch(KindAccountsChanged, "three")
	hub.Sync()

	l := &testListener{}
	hub.AddListener(l)
	hub.Sync()

	require.Len(t, l.events, 2)
	assert.Equal(t, "two", l.events[0].Subject)
	assert.Equal(t, "three", l.events[1].Subject)
}

func TestFailingListenerRemoved(t *testing.T) {
	hub := startHub(t, 5)
	bad := &testListener{err: errors.New("gone")}
	good := &testListener{}
	hub.AddListener(bad)
	hub.AddListener(good)

	hub.Dispatch(KindSettingsChanged, "first")
	hub.Dispatch(KindSettingsChanged, "second")
	hub.Sync()

	assert.Empty(t, bad.events)
	assert.Len(t, good.events, 2)
}

func TestRemoveListener(t *testing.T) {
	hub := startHub(t, 5)
	l := &testListener{}
	hub.AddListener(l)
	hub.RemoveListener(l)
	hub.Dispatch(KindSettingsChanged, "after-remove")
	hub.Sync()

	assert.Empty(t, l.events)
}
