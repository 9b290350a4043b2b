package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// newLighterStreamServer serves the market list over REST and scripted
// messages over the stream endpoint.
func newLighterStreamServer(t *testing.T, streamMessages []string) (*httptest.Server, *Config) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lighter/orderBooks":
			_, _ = w.Write([]byte(`{"order_books": [{"symbol": "BTC", "market_id": 7}]}`))
		case "/stream":
			conn, err := upgrader.Upgrade(w, r, nil)
			require.NoError(t, err)
			defer conn.Close()

			var sub lighterSubscribeMessage
			require.NoError(t, conn.ReadJSON(&sub))
			require.Equal(t, "subscribe", sub.Type)
			require.Equal(t, "order_book/7", sub.Channel)

			for _, msg := range streamMessages {
				require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
			}
			// Hold the connection open until the client walks away.
			_, _, _ = conn.ReadMessage()
		default:
			http.NotFound(w, r)
		}
	}))

	cfg := testConfig(server.URL)
	cfg.LighterWsURL = "ws" + strings.TrimPrefix(server.URL, "http") + "/stream"
	return server, cfg
}

func TestFetchLighterSnapshot(t *testing.T) {
	server, cfg := newLighterStreamServer(t, []string{
		`{"type": "connected"}`,
		`not even json`,
		`{"type": "subscribed/order_book", "order_book": {
			"bids": [{"price": "99", "size": "1"}, {"price": "100", "size": "2"}],
			"asks": [{"price": "102", "size": "1"}, {"price": "101", "size": "3"}]
		}}`,
	})
	defer server.Close()

	client := NewClient(WithConfig(cfg), WithHTTPClient(server.Client()))

	book, err := client.FetchLighterSnapshot(context.Background(), "BTC")
	require.NoError(t, err)
	require.Len(t, book.Bids, 2)
	require.Len(t, book.Asks, 2)
	require.InDelta(t, 100.0, book.Bids[0].Px, 1e-9)
	require.InDelta(t, 101.0, book.Asks[0].Px, 1e-9)
	require.Positive(t, book.Timestamp)
}

func TestFetchLighterSnapshotEmptyBook(t *testing.T) {
	server, cfg := newLighterStreamServer(t, []string{
		`{"type": "subscribed/order_book", "order_book": {"bids": [], "asks": []}}`,
	})
	defer server.Close()

	client := NewClient(WithConfig(cfg), WithHTTPClient(server.Client()))

	_, err := client.FetchLighterSnapshot(context.Background(), "BTC")
	require.Error(t, err)
	require.Contains(t, err.Error(), "stream book snapshot is empty")
}

func TestFetchLighterSnapshotTimeout(t *testing.T) {
	server, cfg := newLighterStreamServer(t, nil)
	defer server.Close()

	cfg.WsSnapshotWait = 150 * time.Millisecond
	client := NewClient(WithConfig(cfg), WithHTTPClient(server.Client()))

	start := time.Now()
	_, err := client.FetchLighterSnapshot(context.Background(), "BTC")
	require.Error(t, err)
	require.Contains(t, err.Error(), "timed out")
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestFetchLighterSnapshotUnknownTicker(t *testing.T) {
	server, cfg := newLighterStreamServer(t, nil)
	defer server.Close()

	client := NewClient(WithConfig(cfg), WithHTTPClient(server.Client()))

	_, err := client.FetchLighterSnapshot(context.Background(), "NOPE")
	require.Error(t, err)
}
