package memory

import (
	"time"

	"keep-notes-be/internal/notestate"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps one resident state store per user. Idle stores
// expire; the next request rebuilds them from the document store.
type SessionRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewSessionRepository(ttl, purgeInterval time.Duration) *SessionRepository {
	return &SessionRepository{
		cache: cache.New(ttl, purgeInterval),
		ttl:   ttl,
	}
}

func (r *SessionRepository) Save(userId uuid.UUID, store *notestate.Store) {
	r.cache.Set(userId.String(), store, cache.DefaultExpiration)
}

// Get returns the user's store and slides its expiry.
func (r *SessionRepository) Get(userId uuid.UUID) (*notestate.Store, bool) {
	x, found := r.cache.Get(userId.String())
	if !found {
		return nil, false
	}
	store := x.(*notestate.Store)
	r.cache.Set(userId.String(), store, cache.DefaultExpiration)
	return store, true
}

// SaveIfAbsent stores s unless another store is already resident, and
// returns whichever store won.
func (r *SessionRepository) SaveIfAbsent(userId uuid.UUID, s *notestate.Store) *notestate.Store {
	if err := r.cache.Add(userId.String(), s, cache.DefaultExpiration); err != nil {
		if existing, ok := r.Get(userId); ok {
			return existing
		}
		r.Save(userId, s)
	}
	return s
}

func (r *SessionRepository) Delete(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
