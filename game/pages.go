package game

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Page is a page title together with the short description shown to the
// player who has to reach it.
type Page struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DefaultFallbackPage is substituted when the page provider cannot answer.
var DefaultFallbackPage = Page{Title: "JavaScript", Description: "プログラミング言語"}

// PageProvider supplies random pages for starting points and goals.
type PageProvider interface {
	RandomPage(ctx context.Context) (Page, error)
}

// distinctAttempts bounds how often a goal is re-drawn when it collides with
// the starting page.
const distinctAttempts = 3

type pageSource struct {
	provider PageProvider
	fallback Page
}

// random never fails: provider errors are logged and masked with the
// fallback page so the room operation always completes.
func (s pageSource) random(ctx context.Context) Page {
	if s.provider == nil {
		return s.fallback
	}

	page, err := s.provider.RandomPage(ctx)
	if err != nil {
		log.Warn().Err(err).Str("fallback", s.fallback.Title).Msg("random page lookup failed")
		return s.fallback
	}
	if page.Title == "" {
		log.Warn().Str("fallback", s.fallback.Title).Msg("random page lookup returned an empty title")
		return s.fallback
	}
	return page
}

// goalAvoiding draws a goal that does not coincide with avoid, giving up
// after a few attempts.
func (s pageSource) goalAvoiding(ctx context.Context, avoid string) Page {
	page := s.random(ctx)
	for i := 1; i < distinctAttempts && avoid != "" && MatchesGoal(avoid, page.Title); i++ {
		page = s.random(ctx)
	}
	return page
}
