package game

// DefaultContinuousTurns is the per-player continuous turn budget.
const DefaultContinuousTurns = 3

// TurnController owns turn-budget bookkeeping and moves the turn pointer.
// It works on the room it is handed and must be called with the room lock
// held.
type TurnController struct {
	ContinuousTurns int
}

// Reset prepares the budgets for a (re)started game.
func (tc TurnController) Reset(r *Room) {
	for _, p := range r.players {
		p.ConsecutiveTurnsLeft = tc.initialBudget(r.mode)
	}
	if r.coop != nil {
		r.coop.totalTurnsLeft = r.coop.maxTotalTurns
	}
	r.currentPlayerIndex = 0
}

func (tc TurnController) initialBudget(mode Mode) int {
	if mode != Competitive {
		return 0
	}
	return tc.ContinuousTurns
}

// Advance passes the turn to the next player in roster order.
func (tc TurnController) Advance(r *Room) {
	if len(r.players) == 0 {
		r.currentPlayerIndex = 0
		return
	}
	r.currentPlayerIndex = (r.currentPlayerIndex + 1) % len(r.players)
}

// Elect lets actor keep the turn when it asked for a continuous turn and
// still has budget for one. Otherwise the turn advances. It reports whether
// the turn was kept.
func (tc TurnController) Elect(r *Room, actor *Player, useContinuousTurn bool) bool {
	if r.mode == Competitive && useContinuousTurn && actor.ConsecutiveTurnsLeft > 0 {
		actor.ConsecutiveTurnsLeft--
		return true
	}
	tc.Advance(r)
	return false
}

// SpendShared takes one move off the cooperative budget and reports
// whether the budget is used up.
func (tc TurnController) SpendShared(r *Room) bool {
	if r.coop == nil {
		return false
	}
	if r.coop.totalTurnsLeft > 0 {
		r.coop.totalTurnsLeft--
	}
	return r.coop.totalTurnsLeft == 0
}

// CanContinue reports whether the player now holding the turn may ask for a
// continuous turn on their next move.
func (tc TurnController) CanContinue(r *Room) bool {
	if r.mode != Competitive || r.status != Playing || len(r.players) == 0 {
		return false
	}
	return r.players[r.currentPlayerIndex].ConsecutiveTurnsLeft > 0
}

// Removed fixes the turn pointer after the player at index removed left
// the roster, so the same player keeps the turn where possible. A departing
// turn holder forfeits the turn to whoever now occupies that index.
func (tc TurnController) Removed(r *Room, removed int) {
	if r.status == Playing && removed < r.currentPlayerIndex {
		r.currentPlayerIndex--
	}
	if r.currentPlayerIndex >= len(r.players) {
		r.currentPlayerIndex = 0
	}
}
