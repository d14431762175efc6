package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/judgegodwins/wikirace/game"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls int
	err   error
}

func (c *countingProvider) RandomPage(ctx context.Context) (game.Page, error) {
	if c.err != nil {
		return game.Page{}, c.err
	}
	c.calls++
	return game.Page{Title: fmt.Sprintf("Page %d", c.calls), Description: "upstream"}, nil
}

func newTestPool(t *testing.T, upstream game.PageProvider, size int) (*Pool, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewPool(rdb, upstream, size), mr
}

func TestPoolRefillAndServe(t *testing.T) {
	upstream := &countingProvider{}
	pool, mr := newTestPool(t, upstream, 3)
	ctx := context.Background()

	added, err := pool.Refill(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, added)

	list, err := mr.List(DefaultPoolKey)
	require.NoError(t, err)
	require.Len(t, list, 3)

	page, err := pool.RandomPage(ctx)
	require.NoError(t, err)
	require.Equal(t, "Page 1", page.Title)
	require.Equal(t, 3, upstream.calls)

	added, err = pool.Refill(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, added)
}

func TestPoolFallsThroughToUpstream(t *testing.T) {
	upstream := &countingProvider{}
	pool, mr := newTestPool(t, upstream, 2)
	ctx := context.Background()

	page, err := pool.RandomPage(ctx)
	require.NoError(t, err)
	require.Equal(t, "Page 1", page.Title)

	mr.RPush(DefaultPoolKey, "{broken")
	page, err = pool.RandomPage(ctx)
	require.NoError(t, err)
	require.Equal(t, "Page 2", page.Title)

	mr.Close()
	page, err = pool.RandomPage(ctx)
	require.NoError(t, err)
	require.Equal(t, "Page 3", page.Title)
}

func TestPoolRefillStopsOnUpstreamError(t *testing.T) {
	upstream := &countingProvider{err: errors.New("down")}
	pool, _ := newTestPool(t, upstream, 2)

	added, err := pool.Refill(context.Background())
	require.Error(t, err)
	require.Zero(t, added)
}
