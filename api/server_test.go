package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/judgegodwins/wikirace/game"
	"github.com/judgegodwins/wikirace/util"
	"github.com/judgegodwins/wikirace/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type numberedPages struct {
	mu sync.Mutex
	n  int
}

func (p *numberedPages) RandomPage(ctx context.Context) (game.Page, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n++
	return game.Page{Title: fmt.Sprintf("Page %d", p.n)}, nil
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	config := &util.Config{
		GinMode:        "test",
		AllowedOrigins: []string{"http://localhost:3000"},
		EventRate:      1000,
		EventBurst:     1000,
	}
	registry := game.NewRegistry(game.DefaultSettings(), &numberedPages{})
	server := NewServer(config, registry)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return server, ts
}

func getJSON(t *testing.T, url string, dst any) int {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.NoError(t, json.NewDecoder(res.Body).Decode(dst))
	return res.StatusCode
}

func TestHealth(t *testing.T) {
	server, ts := newTestServer(t)
	_, err := server.registry.Create(context.Background(), "conn-1", "alice", game.Competitive)
	require.NoError(t, err)

	var body response[game.Stats]
	status := getJSON(t, ts.URL+"/health", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, game.Stats{Rooms: 1, Players: 1}, body.Data)
}

func TestCheckRoom(t *testing.T) {
	server, ts := newTestServer(t)
	created, err := server.registry.Create(context.Background(), "conn-1", "alice", game.Cooperative)
	require.NoError(t, err)

	var body response[roomSummary]
	status := getJSON(t, ts.URL+"/rooms/"+created.Room.ID, &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, roomSummary{
		ID:         created.Room.ID,
		Status:     "waiting",
		GameMode:   game.Cooperative,
		Players:    1,
		MaxPlayers: 4,
	}, body.Data)
}

func TestCheckRoomNotFound(t *testing.T) {
	_, ts := newTestServer(t)

	var body response[any]
	status := getJSON(t, ts.URL+"/rooms/NOPE00", &body)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, game.ErrRoomNotFound.Error(), body.Message)
}

func TestCORSPreflight(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, "http://localhost:3000", res.Header.Get("Access-Control-Allow-Origin"))
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, res, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	res.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func write(t *testing.T, conn *websocket.Conn, evtType string, payload any) {
	t.Helper()
	evt, err := ws.NewEvent(evtType, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(evt))
}

func read(t *testing.T, conn *websocket.Conn, evtType string, dst any) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var evt ws.Event
	require.NoError(t, conn.ReadJSON(&evt))
	require.Equal(t, evtType, evt.Type, "payload: %s", evt.Payload)
	require.NoError(t, json.Unmarshal(evt.Payload, dst))
}

func TestWebsocketSession(t *testing.T) {
	server, ts := newTestServer(t)
	alice, bob := dial(t, ts), dial(t, ts)

	write(t, alice, ws.EventCreateRoom, ws.PayloadCreateRoom{PlayerName: "alice"})
	var created ws.PayloadRoomEntered
	read(t, alice, string(game.EventRoomCreated), &created)
	require.Len(t, created.RoomID, game.RoomIDLength)

	write(t, bob, ws.EventJoinRoom, ws.PayloadJoinRoom{RoomID: created.RoomID, PlayerName: "bob"})
	var joined ws.PayloadRoomEntered
	read(t, bob, string(game.EventRoomJoined), &joined)
	var announced ws.PayloadRoomState
	read(t, alice, string(game.EventPlayerJoined), &announced)
	assert.Len(t, announced.Room.Players, 2)

	write(t, bob, ws.EventStartGame, ws.PayloadRoom{RoomID: created.RoomID})
	var rejected ws.PayloadError
	read(t, bob, ws.EventError, &rejected)
	assert.Equal(t, game.ErrNotCreator.Error(), rejected.Message)

	write(t, alice, ws.EventStartGame, ws.PayloadRoom{RoomID: created.RoomID})
	var started ws.PayloadRoomState
	read(t, alice, string(game.EventGameStarted), &started)
	read(t, bob, string(game.EventGameStarted), &started)
	assert.Equal(t, game.Playing, started.Room.Status)

	require.NoError(t, bob.Close())

	var left ws.PayloadRoomState
	read(t, alice, string(game.EventPlayerLeft), &left)
	require.Len(t, left.Room.Players, 1)
	assert.Equal(t, game.Playing, left.Room.Status)

	assert.Eventually(t, func() bool {
		return server.registry.Stats().Players == 1
	}, time.Second, 10*time.Millisecond)
}
