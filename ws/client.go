package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/time/rate"
)

var (
	pongWait     = 10 * time.Second
	pingInterval = (pongWait * 9) / 10
)

const (
	maxMessageSize = 4096
	egressSize     = 64
)

var errRateLimited = errors.New("too many events, slow down")

// Client is one websocket connection. Its ID doubles as the player id in
// every room the connection takes part in.
type Client struct {
	ID          string
	connection  *websocket.Conn
	manager     *Manager
	egress      chan Event
	limiter     *rate.Limiter
	JoinedRooms []string
	err         chan error
}

func NewClient(conn *websocket.Conn, manager *Manager) *Client {
	return &Client{
		ID:          uuid.NewString(),
		connection:  conn,
		manager:     manager,
		egress:      make(chan Event, egressSize),
		limiter:     rate.NewLimiter(rate.Limit(manager.config.EventRate), manager.config.EventBurst),
		JoinedRooms: []string{},
		err:         make(chan error, 2),
	}
}

// Reads incoming messages from the clients websocket connection
func (c *Client) readMessages(ctx context.Context) {
	c.connection.SetReadLimit(maxMessageSize)

	if err := c.connection.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.handleError(err)
		return
	}

	c.connection.SetPongHandler(c.pongHandler)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, payload, err := c.connection.ReadMessage()

			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Warn().Err(err).Str("client", c.ID).Msg("error reading message")
				}
				c.handleError(err)
				return
			}

			var evt Event

			if err := json.Unmarshal(payload, &evt); err != nil {
				c.pushError("", "malformed event")
				continue
			}

			c.handleEvent(ctx, evt)
		}
	}
}

// handleEvent routes evt and reports any failure to this client only.
func (c *Client) handleEvent(ctx context.Context, evt Event) {
	if !c.limiter.Allow() {
		c.pushError(evt.TraceID, errRateLimited.Error())
		return
	}

	if err := c.manager.routeEvent(ctx, evt, c); err != nil {
		log.Debug().Err(err).Str("client", c.ID).Str("event", evt.Type).Msg("event rejected")
		c.pushError(evt.TraceID, err.Error())
	}
}

// writes messages pushed to the client's egress channel
func (c *Client) writeMessages(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)

	defer func() {
		ticker.Stop()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case message, ok := <-c.egress:
			if !ok {
				c.handleError(errors.New("client egress channel unexpectedly closed"))
				return
			}

			data, err := json.Marshal(message)

			if err != nil {
				c.handleError(err)
				return
			}

			if err := c.connection.WriteMessage(websocket.TextMessage, data); err != nil {
				c.handleError(err)
				return
			}
		case <-ticker.C:
			if err := c.connection.WriteMessage(websocket.PingMessage, []byte("")); err != nil {
				c.handleError(err)
				return
			}
		}
	}
}

// Sets a new read deadline when a pong is received for a ping message.
func (c *Client) pongHandler(pongMsg string) error {
	return c.connection.SetReadDeadline(time.Now().Add(pongWait))
}

// handleError reports the first failure of the read or write loop to the
// http handler, which then closes the connection and removes the client.
func (c *Client) handleError(e error) {
	select {
	case c.err <- e:
	default:
	}
}

// Returns the error channel
func (c *Client) Err() chan error {
	return c.err
}

// Creates an event and pushes to client's egress
func (c *Client) PushEventToEgress(evtType string, payload any) error {
	evt, err := NewEvent(evtType, payload)
	if err != nil {
		return err
	}
	c.PushToEgress(evt)
	return nil
}

// PushToEgress queues evt for delivery. A client that stopped draining its
// queue loses the event rather than stalling the room.
func (c *Client) PushToEgress(evt Event) {
	select {
	case c.egress <- evt:
	default:
		log.Warn().Str("client", c.ID).Str("event", evt.Type).Msg("egress full, dropping event")
	}
}

func (c *Client) pushError(traceID, message string) {
	evt, err := NewErrorEvent(traceID, message)
	if err != nil {
		log.Error().Err(err).Msg("building error event")
		return
	}
	c.PushToEgress(evt)
}

// Join subscribes the client to broadcasts of roomId.
func (c *Client) Join(roomId string) {
	c.manager.Lock()
	defer c.manager.Unlock()

	room := c.manager.Rooms[roomId]

	if !slices.Contains(room, c) {
		c.manager.Rooms[roomId] = append(room, c)
	}

	if !slices.Contains(c.JoinedRooms, roomId) {
		c.JoinedRooms = append(c.JoinedRooms, roomId)
	}
}

// Subscribed reports whether the client receives broadcasts of roomId.
func (c *Client) Subscribed(roomId string) bool {
	c.manager.RLock()
	defer c.manager.RUnlock()

	return slices.Contains(c.JoinedRooms, roomId)
}

// Leave unsubscribes the client from roomId.
func (c *Client) Leave(roomId string) {
	c.manager.Lock()
	defer c.manager.Unlock()

	if room, ok := c.manager.Rooms[roomId]; ok {
		if index := slices.Index(room, c); index >= 0 {
			room = slices.Delete(room, index, index+1)
		}
		if len(room) == 0 {
			delete(c.manager.Rooms, roomId)
		} else {
			c.manager.Rooms[roomId] = room
		}
	}

	if index := slices.Index(c.JoinedRooms, roomId); index >= 0 {
		c.JoinedRooms = slices.Delete(c.JoinedRooms, index, index+1)
	}
}

func (c *Client) LeaveAllRooms() {
	c.manager.RLock()
	rooms := slices.Clone(c.JoinedRooms)
	c.manager.RUnlock()

	for _, room := range rooms {
		c.Leave(room)
	}
}
