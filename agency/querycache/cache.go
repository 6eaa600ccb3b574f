// Package querycache holds the most recent read results for the CSV export
// endpoint. Results are keyed by a short-lived token returned to the caller
// in the X-Query-Id header so that concurrent requests cannot export each
// other's data; the most recent entry remains available as a fallback for
// callers that ignore the token.
package querycache

import (
	"sync"

	"github.com/google/uuid"
)

type Result struct {
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

type Cache struct {
	mu sync.Mutex

	capacity int
	entries  map[uuid.UUID]Result
	order    []uuid.UUID
	latest   uuid.UUID
}

func New(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[uuid.UUID]Result),
	}
}

// Put stores a result and returns the token that identifies it. The oldest
// entry is evicted once the cache is full.
func (c *Cache) Put(res Result) uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := uuid.New()

	for len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[token] = res
	c.order = append(c.order, token)
	c.latest = token

	return token
}

func (c *Cache) Get(token uuid.UUID) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, ok := c.entries[token]
	return res, ok
}

// Latest returns the most recently stored result, if any.
func (c *Cache) Latest() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, ok := c.entries[c.latest]
	return res, ok
}

// Clear drops every entry. Called after any mutating raw sql statement since
// cached rows may no longer reflect the database contents.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[uuid.UUID]Result)
	c.order = c.order[:0]
	c.latest = uuid.Nil
}
