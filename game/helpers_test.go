package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// stubPages hands out titles in order, cycling when exhausted.
type stubPages struct {
	mu     sync.Mutex
	titles []string
	next   int
	err    error
	calls  int
}

func (s *stubPages) RandomPage(ctx context.Context) (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.err != nil {
		return Page{}, s.err
	}
	if len(s.titles) == 0 {
		s.next++
		return Page{Title: fmt.Sprintf("Page %d", s.next), Description: "generated"}, nil
	}
	title := s.titles[s.next%len(s.titles)]
	s.next++
	return Page{Title: title, Description: title + " description"}, nil
}

var errProviderDown = errors.New("provider down")

type seqIDs struct {
	mu  sync.Mutex
	ids []string
	i   int
}

func (s *seqIDs) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.ids[s.i%len(s.ids)]
	s.i++
	return id
}

// testRoom builds a waiting room whose roster is ids, creator first.
func testRoom(mode Mode, ids ...string) *Room {
	r := &Room{
		id:         "ROOM01",
		creatorID:  ids[0],
		status:     Waiting,
		mode:       mode,
		maxPlayers: 4,
		turns:      TurnController{ContinuousTurns: DefaultContinuousTurns},
		pages:      pageSource{fallback: DefaultFallbackPage},
	}
	for _, id := range ids {
		r.players = append(r.players, &Player{ID: id, Name: "name-" + id})
	}
	if mode == Cooperative {
		r.coop = &coopState{maxTotalTurns: 6}
	}
	return r
}

// begin puts r into the playing state without touching goals.
func begin(r *Room) *Room {
	r.turns.Reset(r)
	r.status = Playing
	r.startingPage = "日本"
	r.currentPage = "日本"
	return r
}

func withGoals(r *Room, goals ...string) *Room {
	for i, p := range r.players {
		if i < len(goals) {
			p.Goal = Page{Title: goals[i]}
		}
	}
	return r
}

func bg() context.Context {
	return context.Background()
}
