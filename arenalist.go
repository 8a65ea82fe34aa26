// Package arenalist provides the in-memory indexing primitive for a
// log-structured storage engine's write buffer: a concurrent ordered key set
// backed by a probabilistic skip list whose nodes live in a bump-allocating
// arena.
//
// Many readers may query and iterate lock-free while a single writer
// inserts. Individual entries are never removed; the owning engine rotates
// the whole buffer once it reports full, reclaiming all memory in bulk.
//
// Example usage:
//
//	buf := arenalist.NewBuffer(nil)
//
//	buf.Insert([]byte("apple"))
//	buf.Insert([]byte("cherry"))
//
//	if buf.Contains([]byte("apple")) {
//		fmt.Println("found it")
//	}
//
//	it := buf.NewIterator()
//	for it.SeekToFirst(); it.Valid(); it.Next() {
//		fmt.Printf("%s\n", it.Key())
//	}
//
//	if buf.Full() {
//		// hand the buffer off and start a fresh one
//	}
package arenalist

import (
	"github.com/MikhailWahib/arenalist/internal/config"
	"github.com/MikhailWahib/arenalist/skiplist"
)

// Config is an alias for config.Config, re-exported for user convenience.
type Config = config.Config

// DefaultConfig returns a Config struct populated with default values. Re-exported for user convenience.
var DefaultConfig = config.DefaultConfig

// LoadConfig reads a YAML config file, filling missing fields with defaults. Re-exported for user convenience.
var LoadConfig = config.Load

// Buffer is a write buffer index: a skiplist over a fresh arena plus the
// rotation threshold that turns arena usage into a back-pressure signal.
//
// Concurrency follows the underlying list: one writer calling Insert, any
// number of goroutines calling Contains, NewIterator, Size and Full.
type Buffer struct {
	list    *skiplist.SkipList
	arena   *skiplist.Arena
	maxSize int64
}

// NewBuffer creates an empty write buffer over a fresh arena. A nil cfg uses
// defaults.
func NewBuffer(cfg *Config) *Buffer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.FillDefaults()

	arena := skiplist.NewArena(cfg.BlockSize)
	return &Buffer{
		list:    skiplist.NewSkipList(arena, cfg),
		arena:   arena,
		maxSize: cfg.MaxBufferSize,
	}
}

// Insert adds a key to the buffer. The key must not already be present and
// Insert must not be called concurrently with itself.
func (b *Buffer) Insert(key []byte) {
	b.list.Insert(key)
}

// Contains reports whether the buffer holds the key. Never blocks.
func (b *Buffer) Contains(key []byte) bool {
	return b.list.Contains(key)
}

// NewIterator returns a cursor over the buffer's keys in ascending order.
func (b *Buffer) NewIterator() *skiplist.Iterator {
	return b.list.NewIterator()
}

// Size returns the bytes of arena memory committed to the buffer so far.
// It only ever grows.
func (b *Buffer) Size() int64 {
	return b.arena.MemoryUsage()
}

// Full reports whether the buffer has reached its configured size threshold
// and should be rotated by its owner.
func (b *Buffer) Full() bool {
	return b.Size() >= b.maxSize
}
