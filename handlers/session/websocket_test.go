package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cofoundly/backend/handlers/auth"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialSession(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event map[string]string
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func TestSessionWebSocketRequiresToken(t *testing.T) {
	srv := httptest.NewServer(HandleSessionWebSocket())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionWebSocketBroadcast(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	srv := httptest.NewServer(HandleSessionWebSocket())
	defer srv.Close()

	token, err := auth.GenerateToken(7)
	require.NoError(t, err)

	conn := dialSession(t, srv, token)
	defer conn.Close()

	event := readEvent(t, conn)
	assert.Equal(t, "connected", event["type"])

	Broadcast(7, "signed_out")

	event = readEvent(t, conn)
	assert.Equal(t, "signed_out", event["type"])
}

func TestConcurrentBroadcastsAreSerialized(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	srv := httptest.NewServer(HandleSessionWebSocket())
	defer srv.Close()

	token, err := auth.GenerateToken(11)
	require.NoError(t, err)

	conn := dialSession(t, srv, token)
	defer conn.Close()

	event := readEvent(t, conn)
	require.Equal(t, "connected", event["type"])

	// the connection allows one writer at a time; Broadcast holds the
	// lock across its write, so parallel callers must not corrupt frames
	const broadcasts = 20
	var wg sync.WaitGroup
	for i := 0; i < broadcasts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Broadcast(11, "signed_out")
		}()
	}
	wg.Wait()

	for i := 0; i < broadcasts; i++ {
		event = readEvent(t, conn)
		assert.Equal(t, "signed_out", event["type"])
	}
}

func TestBroadcastToAbsentUserIsNoop(t *testing.T) {
	// must not panic when the user has no open subscription
	Broadcast(999999, "signed_out")
}
