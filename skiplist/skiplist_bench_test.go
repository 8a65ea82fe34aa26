package skiplist_test

import (
	"testing"

	"github.com/MikhailWahib/arenalist/internal/config"
	"github.com/MikhailWahib/arenalist/internal/testutil"
	"github.com/MikhailWahib/arenalist/skiplist"
)

func BenchmarkInsert(b *testing.B) {
	cfg := &config.Config{RandSeed: 1}
	sl := skiplist.NewSkipList(skiplist.NewArena(cfg.BlockSize), cfg)
	keys := testutil.ShuffledKeys(b.N, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sl.Insert(keys[i])
	}
}

func BenchmarkContains(b *testing.B) {
	const n = 100000
	cfg := &config.Config{RandSeed: 1}
	sl := skiplist.NewSkipList(skiplist.NewArena(cfg.BlockSize), cfg)
	for _, key := range testutil.ShuffledKeys(n, 1) {
		sl.Insert(key)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sl.Contains(testutil.EncodeKey(uint64(i % n)))
	}
}

func BenchmarkContainsParallel(b *testing.B) {
	const n = 100000
	cfg := &config.Config{RandSeed: 1}
	sl := skiplist.NewSkipList(skiplist.NewArena(cfg.BlockSize), cfg)
	for _, key := range testutil.ShuffledKeys(n, 1) {
		sl.Insert(key)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		probe := uint64(0)
		for pb.Next() {
			sl.Contains(testutil.EncodeKey(probe % n))
			probe++
		}
	})
}

func BenchmarkIterate(b *testing.B) {
	const n = 100000
	cfg := &config.Config{RandSeed: 1}
	sl := skiplist.NewSkipList(skiplist.NewArena(cfg.BlockSize), cfg)
	for _, key := range testutil.ShuffledKeys(n, 1) {
		sl.Insert(key)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := sl.NewIterator()
		for it.SeekToFirst(); it.Valid(); it.Next() {
		}
	}
}
