package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/judgegodwins/wikirace/game"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultPoolKey is the redis list holding prefetched pages.
const DefaultPoolKey = "wikirace:pages"

// Pool serves random pages from a redis list that is topped up in the
// background, so starting a game does not wait on Wikipedia. On an empty or
// unreachable list it asks the upstream provider directly.
type Pool struct {
	rdb      redis.Cmdable
	upstream game.PageProvider
	key      string
	size     int
}

func NewPool(rdb redis.Cmdable, upstream game.PageProvider, size int) *Pool {
	return &Pool{
		rdb:      rdb,
		upstream: upstream,
		key:      DefaultPoolKey,
		size:     size,
	}
}

func (p *Pool) RandomPage(ctx context.Context) (game.Page, error) {
	raw, err := p.rdb.LPop(ctx, p.key).Result()
	switch {
	case err == nil:
		var page game.Page
		if err := json.Unmarshal([]byte(raw), &page); err == nil && page.Title != "" {
			return page, nil
		}
		log.Warn().Str("key", p.key).Msg("discarding malformed pooled page")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("key", p.key).Msg("page pool unavailable")
	}

	return p.upstream.RandomPage(ctx)
}

// Refill fetches pages from upstream until the pool holds size entries and
// returns how many were added.
func (p *Pool) Refill(ctx context.Context) (int, error) {
	held, err := p.rdb.LLen(ctx, p.key).Result()
	if err != nil {
		return 0, err
	}

	added := 0
	for n := int(held); n < p.size; n++ {
		page, err := p.upstream.RandomPage(ctx)
		if err != nil {
			return added, err
		}

		b, err := json.Marshal(page)
		if err != nil {
			return added, err
		}
		if err := p.rdb.RPush(ctx, p.key, b).Err(); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// Run refills the pool every interval until ctx is done.
func (p *Pool) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		added, err := p.Refill(ctx)
		if err != nil {
			log.Warn().Err(err).Int("added", added).Msg("page pool refill failed")
		} else if added > 0 {
			log.Debug().Int("added", added).Msg("page pool refilled")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
