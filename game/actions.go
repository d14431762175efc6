package game

// Action is an inbound player action addressed to a single room.
type Action interface {
	isAction()
}

type Join struct {
	PlayerName string
}

type Start struct{}

type SelectPage struct {
	PageName          string
	UseContinuousTurn bool
}

// Leave removes the acting player, either on request or on disconnect.
type Leave struct{}

func (Join) isAction()       {}
func (Start) isAction()      {}
func (SelectPage) isAction() {}
func (Leave) isAction()      {}

// EventKind names an outbound event. Values are the wire event names.
type EventKind string

const (
	EventRoomCreated  EventKind = "room-created"
	EventRoomJoined   EventKind = "room-joined"
	EventPlayerJoined EventKind = "player-joined"
	EventGameStarted  EventKind = "game-started"
	EventPageSelected EventKind = "page-selected"
	EventGameFinished EventKind = "game-finished"
	EventPlayerLeft   EventKind = "player-left"
)

// Outcome is the result of a successful room action: the event to
// broadcast and the room as it stands afterwards.
type Outcome struct {
	Kind EventKind
	Room Snapshot

	// PlayerID is the player the action was applied to.
	PlayerID string

	// CanUseContinuousTurn is set on page-selected.
	CanUseContinuousTurn bool

	// Winners lists winner ids on game-finished.
	Winners []string

	// Destroyed is set when the roster became empty and the room is gone.
	Destroyed bool
}
