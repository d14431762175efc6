package ws

import (
	"context"
	"encoding/json"

	"github.com/judgegodwins/wikirace/game"
)

type Event struct {
	Type    string          `json:"type"`
	TraceID string          `json:"trace_id,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

type EventHandler func(ctx context.Context, evt Event, c *Client) error

// inbound
const (
	EventCreateRoom = "create-room"
	EventJoinRoom   = "join-room"
	EventStartGame  = "start-game"
	EventSelectPage = "select-page"
	EventLeaveRoom  = "leave-room"
)

// outbound, besides the room events named by game.EventKind
const (
	EventError = "error"
)

type PayloadError struct {
	Message string `json:"message"`
}

type PayloadCreateRoom struct {
	PlayerName string `json:"playerName" validate:"required,max=32"`
	GameMode   string `json:"gameMode" validate:"omitempty,oneof=competitive cooperative"`
}

type PayloadJoinRoom struct {
	RoomID     string `json:"roomId" validate:"required,max=32"`
	PlayerName string `json:"playerName" validate:"required,max=32"`
}

type PayloadRoom struct {
	RoomID string `json:"roomId" validate:"required,max=32"`
}

type PayloadSelectPage struct {
	RoomID            string `json:"roomId" validate:"required,max=32"`
	PageName          string `json:"pageName" validate:"required,max=256"`
	UseContinuousTurn bool   `json:"useContinuousTurn"`
}

type PayloadRoomEntered struct {
	RoomID string        `json:"roomId"`
	Room   game.Snapshot `json:"room"`
}

type PayloadRoomState struct {
	Room game.Snapshot `json:"room"`
}

type PayloadPageSelected struct {
	Room                 game.Snapshot `json:"room"`
	CanUseContinuousTurn bool          `json:"canUseContinuousTurn"`
}

type PayloadGameFinished struct {
	Room    game.Snapshot `json:"room"`
	Winners []string      `json:"winners"`
}

func NewEvent(evtType string, payload any) (Event, error) {
	b, err := json.Marshal(payload)

	if err != nil {
		return Event{}, err
	}

	return NewEventStruct(evtType, b, ""), nil
}

// NewErrorEvent builds the error reply for the event carrying traceId.
func NewErrorEvent(traceId, message string) (Event, error) {
	b, err := json.Marshal(PayloadError{Message: message})

	if err != nil {
		return Event{}, err
	}

	return NewEventStruct(EventError, b, traceId), nil
}

func NewEventStruct(evtType string, payload []byte, traceId string) Event {
	return Event{
		Type:    evtType,
		TraceID: traceId,
		Payload: payload,
	}
}
