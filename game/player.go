package game

// Player is one roster entry. ID is the connection id of the player.
type Player struct {
	ID                   string
	Name                 string
	Goal                 Page // zero in cooperative rooms
	IsWinner             bool
	ConsecutiveTurnsLeft int
}
