package game

// PlayerSnapshot is the wire view of a Player.
type PlayerSnapshot struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	GoalPage             string `json:"goalPage"`
	GoalDescription      string `json:"goalDescription,omitempty"`
	IsWinner             bool   `json:"isWinner"`
	ConsecutiveTurnsLeft int    `json:"consecutiveTurnsLeft"`
}

// Snapshot is an immutable copy of a room, safe to hand to other
// goroutines and to encode for broadcast.
type Snapshot struct {
	ID                    string           `json:"id"`
	Creator               string           `json:"creator"`
	Players               []PlayerSnapshot `json:"players"`
	Status                Status           `json:"status"`
	GameMode              Mode             `json:"gameMode"`
	CurrentPage           string           `json:"currentPage"`
	StartingPage          string           `json:"startingPage"`
	CurrentPlayerIndex    int              `json:"currentPlayerIndex"`
	CommonGoalPage        string           `json:"commonGoalPage,omitempty"`
	CommonGoalDescription string           `json:"commonGoalDescription,omitempty"`
	TotalTurnsLeft        int              `json:"totalTurnsLeft,omitempty"`
	MaxTotalTurns         int              `json:"maxTotalTurns,omitempty"`
}

// CurrentPlayer returns the player holding the turn, if any.
func (s Snapshot) CurrentPlayer() (PlayerSnapshot, bool) {
	if s.Status != Playing || s.CurrentPlayerIndex >= len(s.Players) {
		return PlayerSnapshot{}, false
	}
	return s.Players[s.CurrentPlayerIndex], true
}

// Has reports whether playerID is on the roster.
func (s Snapshot) Has(playerID string) bool {
	for _, p := range s.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

func (r *Room) snapshot() Snapshot {
	players := make([]PlayerSnapshot, len(r.players))
	for i, p := range r.players {
		players[i] = PlayerSnapshot{
			ID:                   p.ID,
			Name:                 p.Name,
			GoalPage:             p.Goal.Title,
			GoalDescription:      p.Goal.Description,
			IsWinner:             p.IsWinner,
			ConsecutiveTurnsLeft: p.ConsecutiveTurnsLeft,
		}
	}

	s := Snapshot{
		ID:                 r.id,
		Creator:            r.creatorID,
		Players:            players,
		Status:             r.status,
		GameMode:           r.mode,
		CurrentPage:        r.currentPage,
		StartingPage:       r.startingPage,
		CurrentPlayerIndex: r.currentPlayerIndex,
	}
	if r.coop != nil {
		s.CommonGoalPage = r.coop.goal.Title
		s.CommonGoalDescription = r.coop.goal.Description
		s.TotalTurnsLeft = r.coop.totalTurnsLeft
		s.MaxTotalTurns = r.coop.maxTotalTurns
	}
	return s
}
