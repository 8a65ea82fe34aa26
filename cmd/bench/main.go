// Command bench runs an insert/lookup workload against a write buffer and
// reports throughput and arena memory usage.
//
// Usage:
//
//	go run ./cmd/bench -keys 1000000 -readers 4 -seed 42
package main

import (
	"flag"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/MikhailWahib/arenalist"
	"github.com/MikhailWahib/arenalist/internal/testutil"
)

var (
	numKeys    = flag.Int("keys", 1_000_000, "number of keys to insert")
	numReaders = flag.Int("readers", 4, "concurrent reader goroutines during the insert phase")
	blockSize  = flag.Int("block-size", 4096, "arena block size in bytes")
	seed       = flag.Uint64("seed", 42, "seed for key shuffling and node heights")
)

func main() {
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	logger.Info().
		Int("keys", *numKeys).
		Int("readers", *numReaders).
		Int("block_size", *blockSize).
		Uint64("seed", *seed).
		Msg("starting write buffer workload")

	cfg := arenalist.DefaultConfig()
	cfg.BlockSize = *blockSize
	cfg.RandSeed = *seed
	buf := arenalist.NewBuffer(cfg)

	keys := testutil.ShuffledKeys(*numKeys, *seed)

	// Readers hammer Contains over the full key range while the writer is
	// still inserting, to exercise the lock-free read path.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for r := 0; r < *numReaders; r++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			probe := uint64(id)
			for {
				select {
				case <-stop:
					return
				default:
					buf.Contains(testutil.EncodeKey(probe % uint64(*numKeys)))
					probe++
				}
			}
		}(r)
	}

	start := time.Now()
	for _, key := range keys {
		buf.Insert(key)
	}
	insertDur := time.Since(start)
	close(stop)
	wg.Wait()

	logger.Info().
		Dur("elapsed", insertDur).
		Float64("inserts_per_sec", float64(*numKeys)/insertDur.Seconds()).
		Str("arena_memory", humanize.IBytes(uint64(buf.Size()))).
		Bool("full", buf.Full()).
		Msg("insert phase done")

	start = time.Now()
	it := buf.NewIterator()
	count := 0
	last := uint64(0)
	for it.SeekToFirst(); it.Valid(); it.Next() {
		v := testutil.DecodeKey(it.Key())
		if count > 0 && v <= last {
			logger.Fatal().Uint64("key", v).Uint64("prev", last).Msg("traversal out of order")
		}
		last = v
		count++
	}
	scanDur := time.Since(start)

	if count != *numKeys {
		logger.Fatal().Int("expected", *numKeys).Int("got", count).Msg("traversal missed keys")
	}

	logger.Info().
		Dur("elapsed", scanDur).
		Float64("keys_per_sec", float64(count)/scanDur.Seconds()).
		Msg("ordered traversal done")
}
