package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/render"
)

func frameWith(price float64, highlight render.Highlight) render.Frame {
	return render.Frame{Rows: []render.DiffedRow{{
		Row:       render.Row{ID: "usdtry", Price: models.Num(price)},
		PriceText: render.FormatPrice(models.Num(price)),
		Highlight: highlight,
	}}}
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(url, "http") + "/ws/market"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestBroadcastReachesClient(t *testing.T) {
	hub := NewHub()
	e := echo.New()
	hub.RegisterRoutes(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	conn := dial(t, srv.URL)

	// wait for registration
	deadline := time.After(2 * time.Second)
	for hub.ClientCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("client never registered")
		case <-time.After(5 * time.Millisecond):
		}
	}

	hub.Broadcast(frameWith(34.5, render.HighlightUp))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got render.Frame
	require.NoError(t, conn.ReadJSON(&got))
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "usdtry", got.Rows[0].ID)
	assert.Equal(t, render.HighlightUp, got.Rows[0].Highlight)
}

func TestNewClientReceivesLastFrame(t *testing.T) {
	hub := NewHub()
	e := echo.New()
	hub.RegisterRoutes(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	hub.Broadcast(frameWith(34.5, render.HighlightNone))

	conn := dial(t, srv.URL)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got render.Frame
	require.NoError(t, conn.ReadJSON(&got))
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "34.50", got.Rows[0].PriceText)
}

func TestDisconnectedClientDropped(t *testing.T) {
	hub := NewHub()
	e := echo.New()
	hub.RegisterRoutes(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	conn := dial(t, srv.URL)
	deadline := time.After(2 * time.Second)
	for hub.ClientCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("client never registered")
		case <-time.After(5 * time.Millisecond):
		}
	}

	require.NoError(t, conn.Close())

	deadline = time.After(2 * time.Second)
	for hub.ClientCount() != 0 {
		select {
		case <-deadline:
			t.Fatal("client never dropped")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// broadcasting to no clients is fine
	hub.Broadcast(frameWith(35.0, render.HighlightUp))
}
