package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/judgegodwins/wikirace/game"
	"github.com/judgegodwins/wikirace/util"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var ErrUnknownEvent = errors.New("there is no such event type")

type ClientList map[string]*Client

// Manager is the session gateway: it owns the websocket connections, feeds
// their events to the room registry and fans room events back out.
type Manager struct {
	clients ClientList
	sync.RWMutex
	handlers map[string]EventHandler
	// Rooms holds the connections subscribed to each room id.
	Rooms    map[string][]*Client
	config   *util.Config
	registry *game.Registry
	upgrader websocket.Upgrader
}

func NewManager(config *util.Config, registry *game.Registry) *Manager {
	m := &Manager{
		clients:  make(ClientList),
		handlers: make(map[string]EventHandler),
		Rooms:    make(map[string][]*Client),
		config:   config,
		registry: registry,
	}

	m.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     m.checkOrigin,
	}

	m.setupEventHandlers()

	return m
}

func (m *Manager) setupEventHandlers() {
	m.handlers[EventCreateRoom] = CreateRoom
	m.handlers[EventJoinRoom] = JoinRoom
	m.handlers[EventStartGame] = StartGame
	m.handlers[EventSelectPage] = SelectPage
	m.handlers[EventLeaveRoom] = LeaveRoom
}

func (m *Manager) routeEvent(ctx context.Context, evt Event, c *Client) error {
	if handler, ok := m.handlers[evt.Type]; ok {
		if err := handler(ctx, evt, c); err != nil {
			return err
		}

		return nil
	}

	return ErrUnknownEvent
}

// publish delivers the outcome of an action by origin on roomID and keeps
// the room subscriptions in step with the roster.
func (m *Manager) publish(roomID string, outcome game.Outcome, origin *Client) {
	switch outcome.Kind {
	case game.EventRoomCreated:
		origin.Join(roomID)
		m.emitTo(origin, outcome.Kind, PayloadRoomEntered{RoomID: roomID, Room: outcome.Room})

	case game.EventPlayerJoined:
		m.EmitToOthers(roomID, origin, game.EventPlayerJoined, PayloadRoomState{Room: outcome.Room})
		m.emitTo(origin, game.EventRoomJoined, PayloadRoomEntered{RoomID: roomID, Room: outcome.Room})

	case game.EventGameStarted:
		m.EmitToRoom(roomID, outcome.Kind, PayloadRoomState{Room: outcome.Room})

	case game.EventPageSelected:
		m.EmitToRoom(roomID, outcome.Kind, PayloadPageSelected{
			Room:                 outcome.Room,
			CanUseContinuousTurn: outcome.CanUseContinuousTurn,
		})

	case game.EventGameFinished:
		m.EmitToRoom(roomID, outcome.Kind, PayloadGameFinished{
			Room:    outcome.Room,
			Winners: lo.Ternary(outcome.Winners == nil, []string{}, outcome.Winners),
		})

	case game.EventPlayerLeft:
		if origin != nil {
			m.emitTo(origin, outcome.Kind, PayloadRoomState{Room: outcome.Room})
			origin.Leave(roomID)
		}
		if outcome.Destroyed {
			m.dropRoom(roomID)
			return
		}
		m.EmitToRoom(roomID, outcome.Kind, PayloadRoomState{Room: outcome.Room})
	}
}

func (m *Manager) emitTo(c *Client, kind game.EventKind, payload any) {
	if err := c.PushEventToEgress(string(kind), payload); err != nil {
		log.Error().Err(err).Str("event", string(kind)).Msg("building event")
	}
}

// subscribers returns a copy of the connections subscribed to roomID.
func (m *Manager) subscribers(roomID string) []*Client {
	m.RLock()
	defer m.RUnlock()

	return append([]*Client(nil), m.Rooms[roomID]...)
}

// EmitToRoom sends an event to every connection subscribed to roomID.
func (m *Manager) EmitToRoom(roomID string, kind game.EventKind, payload any) {
	m.EmitToOthers(roomID, nil, kind, payload)
}

// EmitToOthers sends an event to every subscriber of roomID except skip.
func (m *Manager) EmitToOthers(roomID string, skip *Client, kind game.EventKind, payload any) {
	evt, err := NewEvent(string(kind), payload)
	if err != nil {
		log.Error().Err(err).Str("event", string(kind)).Msg("building event")
		return
	}

	for _, client := range m.subscribers(roomID) {
		if client != skip {
			client.PushToEgress(evt)
		}
	}
}

// dropRoom forgets every subscription to a destroyed room.
func (m *Manager) dropRoom(roomID string) {
	for _, client := range m.subscribers(roomID) {
		client.Leave(roomID)
	}
}

func (m *Manager) hasClient(id string) bool {
	m.RLock()
	defer m.RUnlock()

	_, ok := m.clients[id]
	return ok
}

func (m *Manager) addClient(client *Client) {
	m.Lock()
	defer m.Unlock()

	m.clients[client.ID] = client
}

// removeClient forgets the connection and applies its departure to every
// room that still lists it. Calling it twice is harmless.
func (m *Manager) removeClient(client *Client) {
	m.Lock()
	_, ok := m.clients[client.ID]
	delete(m.clients, client.ID)
	m.Unlock()

	if !ok {
		return
	}

	client.LeaveAllRooms()

	for _, departure := range m.registry.Disconnect(context.Background(), client.ID) {
		m.publish(departure.RoomID, departure.Outcome, nil)
	}

	log.Debug().Str("client", client.ID).Msg("client removed")
}

// Websocket connection handler
func (m *Manager) ServeWS(c *gin.Context) {
	conn, err := m.upgrader.Upgrade(c.Writer, c.Request, nil)

	if err != nil {
		log.Warn().Err(err).Msg("error upgrading to websocket connection")
		return
	}

	client := NewClient(conn, m)

	m.addClient(client)

	log.Debug().Str("client", client.ID).Str("remote", c.ClientIP()).Msg("client connected")

	ctx, cancel := context.WithCancel(c.Request.Context())

	defer func() {
		cancel()
		m.removeClient(client)
		err := client.connection.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)

		if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
			log.Debug().Err(err).Msg("error sending close message")
		}
		client.connection.Close()
	}()

	go client.readMessages(ctx)
	go client.writeMessages(ctx)

	err = <-client.Err()

	log.Debug().Err(err).Str("client", client.ID).Msg("client disconnected")
}

func (m *Manager) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return lo.Contains(m.config.AllowedOrigins, "*") || lo.Contains(m.config.AllowedOrigins, origin)
}
