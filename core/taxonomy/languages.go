package taxonomy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"geotree/core/locale"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Registry enumerates the languages terms are translated into.
type Registry interface {
	Languages(ctx context.Context) ([]Language, error)
}

// GormRegistry reads the languages table.
type GormRegistry struct {
	db *gorm.DB
}

// NewGormRegistry creates a registry backed by db.
func NewGormRegistry(db *gorm.DB) *GormRegistry {
	return &GormRegistry{db: db}
}

// Languages implements Registry, ordered by weight then langcode.
func (r *GormRegistry) Languages(ctx context.Context) ([]Language, error) {
	var langs []Language
	if err := r.db.WithContext(ctx).Order("weight, langcode").Find(&langs).Error; err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return langs, nil
}

// Seed inserts the configured languages that are not registered yet and returns
// how many were added. The default langcode is always registered.
func (r *GormRegistry) Seed(ctx context.Context, langcodes []string, defaultLangcode string) (int, error) {
	all := langcodes
	found := false
	for _, lc := range langcodes {
		if lc == defaultLangcode {
			found = true
			break
		}
	}
	if !found {
		all = append([]string{defaultLangcode}, langcodes...)
	}

	added := 0
	for i, lc := range all {
		lang := Language{
			Langcode:  lc,
			Name:      locale.DisplayLanguage(lc),
			Weight:    i,
			IsDefault: lc == defaultLangcode,
		}
		res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&lang)
		if res.Error != nil {
			return added, fmt.Errorf("failed to register language %s: %w", lc, res.Error)
		}
		added += int(res.RowsAffected)
	}
	return added, nil
}

// CachedRegistry caches another registry's languages for a TTL.
// Concurrent misses share one lookup.
type CachedRegistry struct {
	next  Registry
	ttl   time.Duration
	clock clockwork.Clock

	mu    sync.RWMutex
	langs []Language
	built time.Time
	sf    singleflight.Group
}

// NewCachedRegistry wraps next. A zero ttl disables caching.
func NewCachedRegistry(next Registry, ttl time.Duration, clock clockwork.Clock) *CachedRegistry {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CachedRegistry{next: next, ttl: ttl, clock: clock}
}

// Languages implements Registry.
func (c *CachedRegistry) Languages(ctx context.Context) ([]Language, error) {
	if c.ttl <= 0 {
		return c.next.Languages(ctx)
	}

	if langs, ok := c.fresh(); ok {
		return langs, nil
	}

	result, err, _ := c.sf.Do("languages", func() (interface{}, error) {
		if langs, ok := c.fresh(); ok {
			return langs, nil
		}

		langs, err := c.next.Languages(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.langs = langs
		c.built = c.clock.Now()
		c.mu.Unlock()

		return langs, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Language), nil
}

// Invalidate drops the cached languages.
func (c *CachedRegistry) Invalidate() {
	c.mu.Lock()
	c.langs = nil
	c.built = time.Time{}
	c.mu.Unlock()
}

func (c *CachedRegistry) fresh() ([]Language, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.langs == nil || c.clock.Since(c.built) > c.ttl {
		return nil, false
	}
	return c.langs, true
}
