package strcache

import (
	"fmt"
	"hash/fnv"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultSize is the default entry capacity. Sized so that every member and
// type name of a large binary fits without eviction; an evicted name only
// degrades a member-name match to a miss, it never breaks rendering.
const DefaultSize = 65536

// Cache maps interned name hashes to their string content. It is populated
// once per compile unit during symbol loading and is read-only afterwards
// from the encoding layer's perspective.
type Cache struct {
	entries *lru.Cache
}

// New creates a Cache holding at most size entries.
func New(size int) (*Cache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("create string cache: %v", err)
	}
	return &Cache{entries: entries}, nil
}

// Hash returns the 64-bit FNV-1a hash used as the interning key for name.
func Hash(name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return h.Sum64()
}

// Intern stores name and returns its hash. Called by the symbol loader.
func (c *Cache) Intern(name string) uint64 {
	h := Hash(name)
	c.entries.Add(h, name)
	return h
}

// Lookup returns the string content for an interned hash.
func (c *Cache) Lookup(hash uint64) (string, bool) {
	v, ok := c.entries.Get(hash)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Len returns the number of interned names.
func (c *Cache) Len() int {
	return c.entries.Len()
}
