package game

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Settings are the per-room limits applied by a Registry.
type Settings struct {
	MaxPlayers      int
	ContinuousTurns int
	MaxTotalTurns   int
	Fallback        Page
}

// DefaultSettings returns the limits used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		MaxPlayers:      4,
		ContinuousTurns: DefaultContinuousTurns,
		MaxTotalTurns:   10,
		Fallback:        DefaultFallbackPage,
	}
}

// Room is one game session. All state is guarded by mu; every operation
// goes through Handle so turn validation, goal evaluation and the returned
// snapshot observe the same state.
type Room struct {
	mu sync.Mutex

	id                 string
	creatorID          string
	players            []*Player
	status             Status
	mode               Mode
	coop               *coopState
	currentPage        string
	startingPage       string
	currentPlayerIndex int

	// closed is set once the roster is empty and the registry dropped the room.
	closed bool

	maxPlayers int
	turns      TurnController
	pages      pageSource
}

// newRoom builds a waiting room holding only its creator. Competitive
// creators get their own goal, cooperative rooms get the common goal.
func newRoom(ctx context.Context, creatorID, creatorName string, mode Mode, settings Settings, pages pageSource) *Room {
	r := &Room{
		creatorID:  creatorID,
		status:     Waiting,
		mode:       mode,
		maxPlayers: settings.MaxPlayers,
		turns:      TurnController{ContinuousTurns: settings.ContinuousTurns},
		pages:      pages,
	}

	creator := &Player{ID: creatorID, Name: creatorName}
	if mode == Cooperative {
		r.coop = &coopState{
			goal:           pages.random(ctx),
			totalTurnsLeft: settings.MaxTotalTurns,
			maxTotalTurns:  settings.MaxTotalTurns,
		}
	} else {
		creator.Goal = pages.random(ctx)
		creator.ConsecutiveTurnsLeft = r.turns.initialBudget(mode)
	}
	r.players = []*Player{creator}

	return r
}

func (r *Room) ID() string {
	return r.id
}

// Snapshot returns a copy of the current room state.
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// Handle applies action on behalf of the player with id actorID. Rejected
// actions return an error and leave the room unchanged.
func (r *Room) Handle(ctx context.Context, actorID string, action Action) (Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return Outcome{}, ErrRoomNotFound
	}

	switch a := action.(type) {
	case Join:
		return r.join(ctx, actorID, a.PlayerName)
	case Start:
		return r.start(ctx, actorID)
	case SelectPage:
		return r.selectPage(actorID, a.PageName, a.UseContinuousTurn)
	case Leave:
		return r.removePlayer(actorID)
	default:
		return Outcome{}, ErrUnknownAction
	}
}

func (r *Room) indexOf(playerID string) int {
	_, idx, _ := lo.FindIndexOf(r.players, func(p *Player) bool {
		return p.ID == playerID
	})
	return idx
}

func (r *Room) join(ctx context.Context, actorID, name string) (Outcome, error) {
	if len(r.players) >= r.maxPlayers {
		return Outcome{}, ErrRoomFull
	}
	if r.status != Waiting {
		return Outcome{}, ErrAlreadyPlaying
	}
	if r.indexOf(actorID) >= 0 {
		return Outcome{}, ErrAlreadyJoined
	}

	p := &Player{ID: actorID, Name: name}
	if r.mode == Competitive {
		p.Goal = r.pages.random(ctx)
		p.ConsecutiveTurnsLeft = r.turns.initialBudget(r.mode)
	}
	r.players = append(r.players, p)

	log.Info().Str("room", r.id).Str("player", actorID).Int("players", len(r.players)).Msg("player joined")

	return Outcome{Kind: EventPlayerJoined, Room: r.snapshot(), PlayerID: actorID}, nil
}

// start begins the first game or restarts a finished one. Page lookups run
// while the room lock is held so no other action interleaves with them.
func (r *Room) start(ctx context.Context, actorID string) (Outcome, error) {
	if actorID != r.creatorID {
		return Outcome{}, ErrNotCreator
	}
	if len(r.players) < 2 {
		return Outcome{}, ErrTooFewPlayers
	}
	if r.status == Playing {
		return Outcome{}, ErrAlreadyPlaying
	}

	starting := r.pages.random(ctx)
	if r.coop != nil {
		r.coop.goal = r.pages.goalAvoiding(ctx, starting.Title)
	} else {
		for _, p := range r.players {
			p.Goal = r.pages.goalAvoiding(ctx, starting.Title)
		}
	}

	for _, p := range r.players {
		p.IsWinner = false
	}
	r.turns.Reset(r)
	r.startingPage = starting.Title
	r.currentPage = starting.Title
	r.status = Playing

	log.Info().Str("room", r.id).Str("mode", r.mode.String()).Str("start", starting.Title).Msg("game started")

	return Outcome{Kind: EventGameStarted, Room: r.snapshot(), PlayerID: actorID}, nil
}

func (r *Room) selectPage(actorID, pageName string, useContinuousTurn bool) (Outcome, error) {
	if r.status != Playing {
		return Outcome{}, ErrNotPlaying
	}
	actor := r.players[r.currentPlayerIndex]
	if actor.ID != actorID {
		return Outcome{}, ErrNotYourTurn
	}

	r.currentPage = pageName

	if r.coop != nil {
		return r.selectCooperative(actorID, pageName), nil
	}

	goals := lo.Map(r.players, func(p *Player, _ int) string {
		return p.Goal.Title
	})
	if owner := goalOwner(pageName, goals); owner >= 0 {
		winner := r.players[owner]
		for _, p := range r.players {
			p.IsWinner = p == winner
		}
		return r.finish(actorID), nil
	}

	r.turns.Elect(r, actor, useContinuousTurn)

	return Outcome{
		Kind:                 EventPageSelected,
		Room:                 r.snapshot(),
		PlayerID:             actorID,
		CanUseContinuousTurn: r.turns.CanContinue(r),
	}, nil
}

func (r *Room) selectCooperative(actorID, pageName string) Outcome {
	exhausted := r.turns.SpendShared(r)

	if MatchesGoal(pageName, r.coop.goal.Title) {
		for _, p := range r.players {
			p.IsWinner = true
		}
		return r.finish(actorID)
	}

	r.turns.Advance(r)
	if exhausted {
		for _, p := range r.players {
			p.IsWinner = false
		}
		return r.finish(actorID)
	}

	return Outcome{Kind: EventPageSelected, Room: r.snapshot(), PlayerID: actorID}
}

func (r *Room) finish(actorID string) Outcome {
	r.status = Finished

	winners := lo.FilterMap(r.players, func(p *Player, _ int) (string, bool) {
		return p.ID, p.IsWinner
	})
	log.Info().Str("room", r.id).Strs("winners", winners).Msg("game finished")

	return Outcome{Kind: EventGameFinished, Room: r.snapshot(), PlayerID: actorID, Winners: winners}
}

// removePlayer drops playerID from the roster. An empty roster closes the
// room and the outcome asks the registry to forget it.
func (r *Room) removePlayer(playerID string) (Outcome, error) {
	idx := r.indexOf(playerID)
	if idx < 0 {
		return Outcome{}, ErrNotInRoom
	}

	r.players = append(r.players[:idx], r.players[idx+1:]...)

	if len(r.players) == 0 {
		r.closed = true
		r.currentPlayerIndex = 0
		return Outcome{Kind: EventPlayerLeft, Room: r.snapshot(), PlayerID: playerID, Destroyed: true}, nil
	}

	if r.creatorID == playerID {
		r.creatorID = r.players[0].ID
	}
	r.turns.Removed(r, idx)

	log.Info().Str("room", r.id).Str("player", playerID).Int("players", len(r.players)).Msg("player left")

	return Outcome{Kind: EventPlayerLeft, Room: r.snapshot(), PlayerID: playerID}, nil
}
