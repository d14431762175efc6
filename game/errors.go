package game

import "errors"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrAlreadyPlaying = errors.New("game has already started")
	ErrAlreadyJoined  = errors.New("already joined this room")
	ErrNotCreator     = errors.New("only the room creator can start the game")
	ErrTooFewPlayers  = errors.New("at least 2 players are needed to start the game")
	ErrNotPlaying     = errors.New("game is not in progress")
	ErrNotYourTurn    = errors.New("it is not your turn")
	ErrNotInRoom      = errors.New("player is not in this room")
	ErrUnknownAction  = errors.New("unknown room action")
	ErrNoRoomID       = errors.New("could not allocate a room id")
)

var preconditionErrors = []error{
	ErrRoomFull,
	ErrAlreadyPlaying,
	ErrAlreadyJoined,
	ErrNotCreator,
	ErrTooFewPlayers,
	ErrNotPlaying,
	ErrNotYourTurn,
	ErrNotInRoom,
}

// IsNotFound reports whether err means the addressed room does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoomNotFound)
}

// IsPrecondition reports whether err is a rejected action that left the
// room untouched.
func IsPrecondition(err error) bool {
	for _, target := range preconditionErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
