package handlers

import (
	"sync"
	"time"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/models"

	"github.com/gin-gonic/gin"
)

// Context and session keys shared with the router middleware.
const (
	UserContextKey    = "user"
	BrowserContextKey = "browser_id"
	UserIDSessionKey  = "userID"
)

// browserID identifies the browser a request came from. Component state is
// kept per browser, not per account.
func browserID(c *gin.Context) string {
	return c.GetString(BrowserContextKey)
}

// currentUser returns the signed-in user, if any.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserContextKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

func currentUserID(c *gin.Context) string {
	if u, ok := currentUser(c); ok {
		return u.ID
	}
	return ""
}

// registry holds one value per browser. Replacing, deleting or sweeping an
// entry hands the old value to dispose.
type registry[T any] struct {
	mu      sync.Mutex
	items   map[string]*entry[T]
	dispose func(T)
	now     func() time.Time
}

type entry[T any] struct {
	value T
	seen  time.Time
}

func newRegistry[T any](dispose func(T)) *registry[T] {
	return &registry[T]{items: map[string]*entry[T]{}, dispose: dispose, now: time.Now}
}

func (r *registry[T]) get(key string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[key]
	if !ok {
		var zero T
		return zero, false
	}
	e.seen = r.now()
	return e.value, true
}

// getOrCreate returns the entry for key, creating it with create when absent.
func (r *registry[T]) getOrCreate(key string, create func() T) T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.items[key]; ok {
		e.seen = r.now()
		return e.value
	}
	v := create()
	r.items[key] = &entry[T]{value: v, seen: r.now()}
	return v
}

func (r *registry[T]) put(key string, v T) {
	r.mu.Lock()
	old, had := r.items[key]
	r.items[key] = &entry[T]{value: v, seen: r.now()}
	r.mu.Unlock()
	if had && r.dispose != nil {
		r.dispose(old.value)
	}
}

func (r *registry[T]) delete(key string) {
	r.mu.Lock()
	old, had := r.items[key]
	delete(r.items, key)
	r.mu.Unlock()
	if had && r.dispose != nil {
		r.dispose(old.value)
	}
}

// sweep drops entries not used within idle and reports how many went.
func (r *registry[T]) sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)
	var stale []T
	r.mu.Lock()
	for key, e := range r.items {
		if e.seen.Before(cutoff) {
			stale = append(stale, e.value)
			delete(r.items, key)
		}
	}
	r.mu.Unlock()
	if r.dispose != nil {
		for _, v := range stale {
			r.dispose(v)
		}
	}
	return len(stale)
}

func (r *registry[T]) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
