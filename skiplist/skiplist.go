// Package skiplist implements a concurrent ordered set of byte-slice keys,
// built as a probabilistic skip list whose nodes live in a bump-allocating
// memory arena.
//
// The list admits any number of lock-free readers concurrently with a single
// writer. Contains and iterator operations never block; Insert serializes on
// an internal mutex. Nothing is ever deleted: the owner discards the whole
// list, and with it the arena, when the write buffer it indexes is rotated.
package skiplist

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/MikhailWahib/arenalist/internal/config"
)

// Comparator defines a total order over keys. It must be deterministic and
// must not retain or mutate its arguments. It should return a negative value
// if a < b, zero if a == b, and a positive value if a > b.
type Comparator func(a, b []byte) int

// SkipList is a concurrent ordered set of keys allocated in an arena.
//
// Readers (Contains, iterators) synchronize with the writer purely through
// atomic loads of forward links, so they may miss a concurrently inserted
// key at upper levels but always observe it on level 0 once Insert returns.
type SkipList struct {
	arena *Arena
	head  *node
	cmp   Comparator

	// maxHeight is the height of the tallest live node. Readers load it to
	// pick their starting level; a stale value just starts them lower.
	maxHeight atomic.Int32

	// mu serializes writers. The RNG below is only touched under it.
	mu        sync.Mutex
	rng       *rand.Rand
	maxLevel  int
	branching int
}

// NewSkipList creates a skiplist over the given arena with keys ordered by
// bytes.Compare. A nil cfg uses defaults.
func NewSkipList(arena *Arena, cfg *config.Config) *SkipList {
	return NewSkipListWithComparator(arena, bytes.Compare, cfg)
}

// NewSkipListWithComparator creates a skiplist with a custom key order.
// The comparator must not be nil.
func NewSkipListWithComparator(arena *Arena, cmp Comparator, cfg *config.Config) *SkipList {
	if cmp == nil {
		panic("skiplist: comparator cannot be nil")
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.FillDefaults()
	if cfg.MaxHeight < 1 || cfg.MaxHeight > maxTowerHeight {
		panic(fmt.Sprintf("skiplist: MaxHeight must be in [1, %d], got %d", maxTowerHeight, cfg.MaxHeight))
	}
	if cfg.Branching < 2 {
		panic(fmt.Sprintf("skiplist: Branching must be at least 2, got %d", cfg.Branching))
	}

	seed := cfg.RandSeed
	if seed == 0 {
		seed = rand.Uint64()
	}

	s := &SkipList{
		arena:     arena,
		cmp:       cmp,
		rng:       rand.New(rand.NewPCG(seed, seed)),
		maxLevel:  cfg.MaxHeight,
		branching: cfg.Branching,
	}
	// The sentinel head carries a link at every configured level. Its key is
	// never compared. Arena memory comes back zeroed, so all links start nil.
	s.head = s.newNode(nil, s.maxLevel)
	s.maxHeight.Store(1)
	return s
}

// Insert adds key to the set. The key bytes are copied into the arena, so
// the caller may reuse the slice afterwards.
//
// The caller must guarantee the key is not already present; inserting a
// duplicate panics. Insert may run concurrently with any number of readers
// but never with another Insert on the same list.
func (s *SkipList) Insert(key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prev [maxTowerHeight]*node
	x := s.findGreaterOrEqual(key, prev[:])
	if x != nil && s.cmp(x.key(), key) == 0 {
		panic("skiplist: duplicate key inserted")
	}

	height := s.randomHeight()
	curMax := int(s.maxHeight.Load())
	if height > curMax {
		for i := curMax; i < height; i++ {
			prev[i] = s.head
		}
	}

	nd := s.newNode(key, height)

	// The new node is still invisible to readers, so its own links can be
	// set with plain stores. Each predecessor link is then published with a
	// release store: any reader that reaches nd through an acquire load sees
	// the node fully constructed.
	for i := 0; i < height; i++ {
		nd.setNextRelaxed(i, prev[i].nextRelaxed(i))
	}
	for i := 0; i < height; i++ {
		prev[i].setNext(i, nd)
	}

	if height > curMax {
		// Publish the raised height last. Readers that still see the old
		// value simply skip the new top levels and find the key lower down.
		s.maxHeight.Store(int32(height))
	}
}

// Contains reports whether key is in the set. It is lock-free and safe to
// call concurrently with Insert and other readers.
func (s *SkipList) Contains(key []byte) bool {
	x := s.findGreaterOrEqual(key, nil)
	return x != nil && s.cmp(x.key(), key) == 0
}

// NewIterator returns a cursor over the list, positioned invalid until one
// of its seek methods is called. Safe to call concurrently with anything.
func (s *SkipList) NewIterator() *Iterator {
	return &Iterator{list: s}
}

// Arena returns the arena the list allocates from, for memory accounting by
// the owning write buffer.
func (s *SkipList) Arena() *Arena {
	return s.arena
}

// newNode allocates a node of the given height in the arena, copying key
// into arena memory alongside it. A nil key is reserved for the sentinel.
func (s *SkipList) newNode(key []byte, height int) *node {
	// The tower tail beyond height is deliberately not allocated; the
	// resulting *node must never touch slots at or above height.
	buf := s.arena.AllocateAligned(nodeSize(height))
	nd := (*node)(unsafe.Pointer(&buf[0]))
	nd.height = uint32(height)
	if len(key) > 0 {
		kbuf := s.arena.Allocate(len(key))
		copy(kbuf, key)
		nd.keyPtr = &kbuf[0]
		nd.keyLen = uint32(len(key))
	}
	return nd
}

// randomHeight draws the tower height for a new node: start at 1 and promote
// with probability 1/branching until the configured maximum. Called only
// under the write mutex, so the RNG needs no synchronization.
func (s *SkipList) randomHeight() int {
	h := 1
	for h < s.maxLevel && s.rng.IntN(s.branching) == 0 {
		h++
	}
	return h
}

// keyIsAfterNode reports whether key orders strictly after the given node.
func (s *SkipList) keyIsAfterNode(key []byte, n *node) bool {
	return n != nil && s.cmp(n.key(), key) < 0
}

// findGreaterOrEqual returns the first node with key >= the target, or nil.
// If prev is non-nil it records the predecessor at every level descended
// through, for use as the insertion splice path.
func (s *SkipList) findGreaterOrEqual(key []byte, prev []*node) *node {
	x := s.head
	level := int(s.maxHeight.Load()) - 1
	for {
		next := x.next(level)
		if s.keyIsAfterNode(key, next) {
			x = next
		} else {
			if prev != nil {
				prev[level] = x
			}
			if level == 0 {
				return next
			}
			level--
		}
	}
}

// findLessThan returns the rightmost node with key < the target, which is
// the head sentinel if no such node exists.
func (s *SkipList) findLessThan(key []byte) *node {
	x := s.head
	level := int(s.maxHeight.Load()) - 1
	for {
		next := x.next(level)
		if s.keyIsAfterNode(key, next) {
			x = next
		} else {
			if level == 0 {
				return x
			}
			level--
		}
	}
}

// findLast returns the rightmost node on level 0, which is the head sentinel
// if the list is empty.
func (s *SkipList) findLast() *node {
	x := s.head
	level := int(s.maxHeight.Load()) - 1
	for {
		next := x.next(level)
		if next != nil {
			x = next
		} else {
			if level == 0 {
				return x
			}
			level--
		}
	}
}
