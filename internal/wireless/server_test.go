package wireless

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startStack(t *testing.T) (*Server, *Tracker, *httptest.Server) {
	t.Helper()
	tracker := NewTracker()
	srv := NewServer("", tracker.OnConnect, tracker.OnDisconnect)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, tracker, ts
}

func dialPeer(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + NotifyPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestNotifyWithoutPeerFails(t *testing.T) {
	srv, _, _ := startStack(t)
	assert.ErrorIs(t, srv.Notify(nil, []byte{1, 2, 3}), ErrNotSubscribed)
}

func TestNotifyBeforeSubscribeFails(t *testing.T) {
	srv, tracker, ts := startStack(t)
	dialPeer(t, ts)

	require.Eventually(t, func() bool { return tracker.Current() != nil },
		time.Second, 5*time.Millisecond, "connect callback did not fire")

	err := srv.Notify(tracker.Current(), []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrNotSubscribed)
}

func TestSubscribeThenNotifyDeliversFrame(t *testing.T) {
	srv, tracker, ts := startStack(t)
	conn := dialPeer(t, ts)

	require.Eventually(t, func() bool { return tracker.Current() != nil },
		time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("subscribe")))
	require.Eventually(t, func() bool { return tracker.Current().Subscribed() },
		time.Second, 5*time.Millisecond, "subscribe frame was not applied")

	payload := []byte{0x64, 0x00, 0xCE, 0xFF, 0x78, 0x7F}
	require.NoError(t, srv.Notify(tracker.Current(), payload))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	mt, got, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, mt)
	assert.Equal(t, payload, got)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	srv, tracker, ts := startStack(t)
	conn := dialPeer(t, ts)

	require.Eventually(t, func() bool { return tracker.Current() != nil },
		time.Second, 5*time.Millisecond)
	peer := tracker.Current()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("subscribe")))
	require.Eventually(t, func() bool { return peer.Subscribed() }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("unsubscribe")))
	require.Eventually(t, func() bool { return !peer.Subscribed() }, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, srv.Notify(peer, []byte{1}), ErrNotSubscribed)
}

func TestDisconnectReleasesPeer(t *testing.T) {
	_, tracker, ts := startStack(t)
	conn := dialPeer(t, ts)

	require.Eventually(t, func() bool { return tracker.Current() != nil },
		time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return tracker.Current() == nil },
		time.Second, 5*time.Millisecond, "disconnect callback did not clear the peer")
}

func TestSecondPeerRejectedWhileConnected(t *testing.T) {
	_, tracker, ts := startStack(t)
	dialPeer(t, ts)

	require.Eventually(t, func() bool { return tracker.Current() != nil },
		time.Second, 5*time.Millisecond)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + NotifyPath
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, 409, resp.StatusCode)
	}
}
