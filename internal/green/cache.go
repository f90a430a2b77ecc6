package green

import (
	"encoding/binary"
	"math"
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/cespare/xxhash/v2"

	"verdant/internal/kind"
)

// DefaultCacheSize is the slot count of the shared cache.
const DefaultCacheSize = 1 << 16

const maxCachedSlots = 3

// Cache interns low-arity nodes by (kind, child identity, factory context).
// It is a cache, not a map: slots are overwritten on collision and a lost race
// between two writers only loses an entry. Results never depend on hits.
type Cache struct {
	slots []atomic.Pointer[cacheEntry]
	mask  uint64

	lookups atomic.Uint64
	hits    atomic.Uint64
	adds    atomic.Uint64
}

type cacheEntry struct {
	hash uint64
	node Node
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Size    int
	Lookups uint64
	Hits    uint64
	Adds    uint64
}

// HitRate returns hits/lookups, or 0 before the first lookup.
func (s CacheStats) HitRate() float64 {
	if s.Lookups == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Lookups)
}

// NewCache returns a cache with size rounded up to a power of two. size <= 0
// returns a cache that always misses.
func NewCache(size int) *Cache {
	if size <= 0 {
		return &Cache{}
	}
	n := uint64(1) << bits.Len64(uint64(size-1))
	return &Cache{slots: make([]atomic.Pointer[cacheEntry], n), mask: n - 1}
}

var (
	// Shared is the process-wide cache used by Default.
	Shared = NewCache(DefaultCacheSize)
	// Disabled never hits and never stores.
	Disabled = NewCache(0)
)

// Enabled reports whether the cache stores anything.
func (c *Cache) Enabled() bool { return c != nil && len(c.slots) > 0 }

func (c *Cache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	return CacheStats{
		Size:    len(c.slots),
		Lookups: c.lookups.Load(),
		Hits:    c.hits.Load(),
		Adds:    c.adds.Load(),
	}
}

func identity(n Node) uint64 {
	if n == nil {
		return 0
	}
	return uint64(uintptr(unsafe.Pointer(n.hdr())))
}

// Cacheable reports whether a node of these children would be a candidate.
// Nodes carrying diagnostics, annotations, directives, skipped text or
// structured trivia, and nodes made only of missing tokens, are never cached.
func Cacheable(children ...Node) bool {
	if len(children) == 0 || len(children) > maxCachedSlots {
		return false
	}
	return inherit(children...)&InheritMask == IsNotMissing
}

func keyHash(k kind.Kind, ctx Flags, children []Node) uint64 {
	var buf [4 + 8*maxCachedSlots]byte
	binary.LittleEndian.PutUint16(buf[0:], uint16(k))
	binary.LittleEndian.PutUint16(buf[2:], uint16(ctx&cacheKeyMask))
	n := 4
	for _, c := range children {
		binary.LittleEndian.PutUint64(buf[n:], identity(c))
		n += 8
	}
	return xxhash.Sum64(buf[:n])
}

// TryGet looks up a node of kind k with exactly these children built under
// ctx. IsSeparated in ctx is part of the key. On a miss it returns the hash
// to pass to Add; hash < 0 means the combination is not cacheable and must
// not be added.
func (c *Cache) TryGet(k kind.Kind, ctx Flags, children ...Node) (Node, int) {
	if !c.Enabled() || !Cacheable(children...) {
		return nil, -1
	}
	ctx &= cacheKeyMask
	h := keyHash(k, ctx, children) & math.MaxInt64
	c.lookups.Add(1)
	e := c.slots[h&c.mask].Load()
	if e != nil && e.hash == h && matches(e.node, k, ctx, children) {
		c.hits.Add(1)
		return e.node, int(h)
	}
	return nil, int(h)
}

func matches(n Node, k kind.Kind, ctx Flags, children []Node) bool {
	if n.Kind() != k || n.Flags() != IsNotMissing|ctx || n.SlotCount() != len(children) {
		return false
	}
	for i, c := range children {
		if n.Slot(i) != c {
			return false
		}
	}
	return true
}

// Add stores n under hash, replacing whatever the slot held.
func (c *Cache) Add(n Node, hash int) {
	if !c.Enabled() || hash < 0 || n == nil {
		return
	}
	h := uint64(hash)
	c.slots[h&c.mask].Store(&cacheEntry{hash: h, node: n})
	c.adds.Add(1)
}
