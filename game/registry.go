package game

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// maxIDAttempts bounds the collision retries when allocating a room id.
const maxIDAttempts = 64

// Registry is the process-wide store of live rooms. Its lock only guards
// the id→room map and is never held while a room handles an action.
type Registry struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	ids      IDGenerator
	settings Settings
	pages    pageSource
}

type RegistryOption func(*Registry)

// WithIDGenerator replaces the random room id generator.
func WithIDGenerator(ids IDGenerator) RegistryOption {
	return func(reg *Registry) {
		reg.ids = ids
	}
}

func NewRegistry(settings Settings, provider PageProvider, opts ...RegistryOption) *Registry {
	if settings.Fallback.Title == "" {
		settings.Fallback = DefaultFallbackPage
	}

	reg := &Registry{
		rooms:    make(map[string]*Room),
		ids:      randomIDs{},
		settings: settings,
		pages:    pageSource{provider: provider, fallback: settings.Fallback},
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

func (reg *Registry) Settings() Settings {
	return reg.settings
}

// Create opens a new waiting room owned by connID. Page lookups happen
// before the room becomes visible to other connections.
func (reg *Registry) Create(ctx context.Context, connID, playerName string, mode Mode) (Outcome, error) {
	room := newRoom(ctx, connID, playerName, mode, reg.settings, reg.pages)

	reg.mu.Lock()
	id, ok := reg.allocateID()
	if !ok {
		reg.mu.Unlock()
		return Outcome{}, ErrNoRoomID
	}
	room.id = id
	reg.rooms[id] = room
	reg.mu.Unlock()

	log.Info().Str("room", id).Str("creator", connID).Str("mode", mode.String()).Msg("room created")

	return Outcome{Kind: EventRoomCreated, Room: room.Snapshot(), PlayerID: connID}, nil
}

// allocateID must be called with reg.mu held.
func (reg *Registry) allocateID() (string, bool) {
	for i := 0; i < maxIDAttempts; i++ {
		id := reg.ids.Generate()
		if _, taken := reg.rooms[id]; !taken {
			return id, true
		}
	}
	return "", false
}

func (reg *Registry) lookup(roomID string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[roomID]
	return room, ok
}

// Dispatch routes action from connID to the room roomID. Unknown ids fail
// with ErrRoomNotFound. A room whose roster becomes empty is dropped.
func (reg *Registry) Dispatch(ctx context.Context, roomID, connID string, action Action) (Outcome, error) {
	room, ok := reg.lookup(roomID)
	if !ok {
		return Outcome{}, ErrRoomNotFound
	}

	outcome, err := room.Handle(ctx, connID, action)
	if err != nil {
		log.Debug().Err(err).Str("room", roomID).Str("player", connID).Msg("action rejected")
		return Outcome{}, err
	}

	if outcome.Destroyed {
		reg.drop(room)
	}
	return outcome, nil
}

func (reg *Registry) drop(room *Room) {
	reg.mu.Lock()
	if current, ok := reg.rooms[room.id]; ok && current == room {
		delete(reg.rooms, room.id)
	}
	reg.mu.Unlock()

	log.Info().Str("room", room.id).Msg("room destroyed")
}

// Departure is the effect of a disconnect on one room.
type Departure struct {
	RoomID  string
	Outcome Outcome
}

// Disconnect removes connID from every room holding it. Rooms left empty
// are destroyed. Calling it again for the same connection is a no-op.
func (reg *Registry) Disconnect(ctx context.Context, connID string) []Departure {
	reg.mu.RLock()
	rooms := lo.Values(reg.rooms)
	reg.mu.RUnlock()

	var departures []Departure
	for _, room := range rooms {
		outcome, err := room.Handle(ctx, connID, Leave{})
		if err != nil {
			continue
		}
		if outcome.Destroyed {
			reg.drop(room)
		}
		departures = append(departures, Departure{RoomID: room.id, Outcome: outcome})
	}
	return departures
}

// Room returns a snapshot of roomID.
func (reg *Registry) Room(roomID string) (Snapshot, error) {
	room, ok := reg.lookup(roomID)
	if !ok {
		return Snapshot{}, ErrRoomNotFound
	}
	return room.Snapshot(), nil
}

// Stats summarizes the live rooms.
type Stats struct {
	Rooms   int `json:"rooms"`
	Players int `json:"players"`
	Playing int `json:"playing"`
}

func (reg *Registry) Stats() Stats {
	reg.mu.RLock()
	rooms := lo.Values(reg.rooms)
	reg.mu.RUnlock()

	stats := Stats{Rooms: len(rooms)}
	for _, room := range rooms {
		snap := room.Snapshot()
		stats.Players += len(snap.Players)
		if snap.Status == Playing {
			stats.Playing++
		}
	}
	return stats
}
