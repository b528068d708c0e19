package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/srgjo27/venue_booking/internal/core/domain"
	"github.com/srgjo27/venue_booking/internal/core/ports"
)

const (
	catalogueKey = "calendar:catalogue"

	// catalogueTTL caps how long a catalogue filled just before a write
	// can outlive that write's invalidation.
	catalogueTTL = 30 * time.Second
)

func stateKey(name string) string {
	return fmt.Sprintf("calendar:state:%s", name)
}

// CalendarRepository is a read-through cache in front of another
// CalendarRepository. Redis failures degrade to the wrapped store.
// Mutations overwrite the State entry with the committed document and
// drop the catalogue; read fills only land on empty keys, so a reader
// that loaded before a write cannot replace the writer's document.
type CalendarRepository struct {
	next ports.CalendarRepository
	rdb  redis.Cmdable
	ttl  time.Duration
	log  zerolog.Logger
}

func NewCalendarRepository(next ports.CalendarRepository, rdb redis.Cmdable, ttl time.Duration, logger zerolog.Logger) *CalendarRepository {
	return &CalendarRepository{
		next: next,
		rdb:  rdb,
		ttl:  ttl,
		log:  logger.With().Str("component", "calendar_cache").Logger(),
	}
}

func (c *CalendarRepository) FindByState(ctx context.Context, name string) (*domain.State, error) {
	var st domain.State
	if !ports.FreshRead(ctx) && c.get(ctx, stateKey(name), &st) {
		return &st, nil
	}

	fresh, err := c.next.FindByState(ctx, name)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, stateKey(name), fresh, c.ttl)
	return fresh, nil
}

func (c *CalendarRepository) ListStates(ctx context.Context) ([]string, error) {
	return c.next.ListStates(ctx)
}

func (c *CalendarRepository) Catalogue(ctx context.Context) ([]domain.State, error) {
	var states []domain.State
	if c.get(ctx, catalogueKey, &states) {
		return states, nil
	}

	fresh, err := c.next.Catalogue(ctx)
	if err != nil {
		return nil, err
	}
	c.fill(ctx, catalogueKey, fresh, min(c.ttl, catalogueTTL))
	return fresh, nil
}

func (c *CalendarRepository) AddFarm(ctx context.Context, state, place string, farm domain.Farm) (*domain.Farm, error) {
	f, err := c.next.AddFarm(ctx, state, place, farm)
	if err == nil {
		c.invalidate(ctx, state)
	}
	return f, err
}

func (c *CalendarRepository) RemoveFarm(ctx context.Context, state, place, farmID string) error {
	err := c.next.RemoveFarm(ctx, state, place, farmID)
	if err == nil {
		c.invalidate(ctx, state)
	}
	return err
}

func (c *CalendarRepository) PushEvent(ctx context.Context, ref domain.FarmRef, event domain.Event) (*domain.State, error) {
	st, err := c.next.PushEvent(ctx, ref, event)
	if err == nil {
		c.refresh(ctx, st)
	}
	return st, err
}

func (c *CalendarRepository) ReplaceEvent(ctx context.Context, ref domain.FarmRef, eventID string, event domain.Event) (*domain.State, error) {
	st, err := c.next.ReplaceEvent(ctx, ref, eventID, event)
	if err == nil {
		c.refresh(ctx, st)
	}
	return st, err
}

func (c *CalendarRepository) RemoveEvent(ctx context.Context, ref domain.FarmRef, eventID string) (*domain.State, error) {
	st, err := c.next.RemoveEvent(ctx, ref, eventID)
	if err == nil {
		c.refresh(ctx, st)
	}
	return st, err
}

func (c *CalendarRepository) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache entry unreadable")
		return false
	}
	return true
}

func (c *CalendarRepository) fill(ctx context.Context, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.SetNX(ctx, key, string(raw), ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// refresh stores the document a mutation just committed.
func (c *CalendarRepository) refresh(ctx context.Context, st *domain.State) {
	raw, err := json.Marshal(st)
	if err != nil {
		c.invalidate(ctx, st.Name)
		return
	}

	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, stateKey(st.Name), string(raw), c.ttl)
	pipe.Del(ctx, catalogueKey)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn().Err(err).Str("state", st.Name).Msg("cache refresh failed")
		c.invalidate(ctx, st.Name)
	}
}

func (c *CalendarRepository) invalidate(ctx context.Context, state string) {
	if err := c.rdb.Del(ctx, stateKey(state), catalogueKey).Err(); err != nil {
		c.log.Warn().Err(err).Str("state", state).Msg("cache invalidation failed")
	}
}
