package catalog

import (
	"context"
	"errors"
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/repository"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultCacheTTL    = 5 * time.Minute
	DefaultCacheSizeMB = 32

	indexKey        = "catalog:index"
	exerciseKeyPref = "exercise:"
)

// Cache is a read-through cache in front of an ExerciseRepository. The
// catalog index and every exercise are separate entries so the catalog is
// not bound by the maximum entry size. Writes go to the wrapped repository
// and drop every entry.
type Cache struct {
	inner   repository.ExerciseRepository
	cache   *freecache.Cache
	ttl     int
	metrics *metrics.Metrics
}

var _ repository.ExerciseRepository = (*Cache)(nil)

// NewCache wraps inner. m may be nil.
func NewCache(inner repository.ExerciseRepository, sizeMB int, ttl time.Duration, m *metrics.Metrics) *Cache {
	if sizeMB <= 0 {
		sizeMB = DefaultCacheSizeMB
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		inner:   inner,
		cache:   freecache.NewCache(sizeMB * 1024 * 1024),
		ttl:     int(ttl.Seconds()),
		metrics: m,
	}
}

func (c *Cache) FindAll(ctx context.Context) ([]domain.Exercise, error) {
	if exercises, ok := c.cachedCatalog(); ok {
		c.record("hit")
		return exercises, nil
	}
	c.record("miss")

	exercises, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make([]byte, 0, len(exercises)*12)
	for i := range exercises {
		c.store(&exercises[i])
		index = append(index, exercises[i].ID[:]...)
	}
	if err := c.cache.Set([]byte(indexKey), index, c.ttl); err != nil {
		log.WithError(err).WithField("exercises", len(exercises)).Debug("catalog index not cached")
	}
	return exercises, nil
}

func (c *Cache) cachedCatalog() ([]domain.Exercise, bool) {
	index, err := c.cache.Get([]byte(indexKey))
	if err != nil {
		return nil, false
	}
	exercises := make([]domain.Exercise, 0, len(index)/12)
	for off := 0; off+12 <= len(index); off += 12 {
		var id primitive.ObjectID
		copy(id[:], index[off:off+12])
		ex, ok := c.load(id)
		if !ok {
			return nil, false
		}
		exercises = append(exercises, *ex)
	}
	return exercises, true
}

func (c *Cache) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	if ex, ok := c.load(id); ok {
		c.record("hit")
		return ex, nil
	}
	c.record("miss")
	ex, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.store(ex)
	return ex, nil
}

// GetByIDs serves cached exercises and fetches the rest in one call.
func (c *Cache) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Exercise, error) {
	found := make([]domain.Exercise, 0, len(ids))
	var missing []primitive.ObjectID
	for _, id := range ids {
		if ex, ok := c.load(id); ok {
			found = append(found, *ex)
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		c.record("hit")
		return found, nil
	}
	c.record("miss")

	fetched, err := c.inner.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for i := range fetched {
		c.store(&fetched[i])
	}
	return append(found, fetched...), nil
}

func (c *Cache) UpsertByExternalID(ctx context.Context, exercise *domain.Exercise) (bool, error) {
	created, err := c.inner.UpsertByExternalID(ctx, exercise)
	c.Invalidate()
	return created, err
}

// Invalidate drops every cached entry.
func (c *Cache) Invalidate() {
	c.cache.Clear()
}

func (c *Cache) load(id primitive.ObjectID) (*domain.Exercise, bool) {
	raw, err := c.cache.Get(exerciseKey(id))
	if err != nil {
		return nil, false
	}
	var ex domain.Exercise
	if err := bson.Unmarshal(raw, &ex); err != nil {
		c.cache.Del(exerciseKey(id))
		return nil, false
	}
	return &ex, true
}

func (c *Cache) store(ex *domain.Exercise) {
	raw, err := bson.Marshal(ex)
	if err != nil {
		log.WithError(err).WithField("exercise_id", ex.ID.Hex()).Warn("failed to encode exercise for cache")
		return
	}
	if err := c.cache.Set(exerciseKey(ex.ID), raw, c.ttl); err != nil && !errors.Is(err, freecache.ErrLargeEntry) {
		log.WithError(err).WithField("exercise_id", ex.ID.Hex()).Warn("failed to cache exercise")
	}
}

func (c *Cache) record(result string) {
	if c.metrics != nil {
		c.metrics.CounterCatalogCache.WithLabelValues(result).Inc()
	}
}

func exerciseKey(id primitive.ObjectID) []byte {
	return append([]byte(exerciseKeyPref), id[:]...)
}
