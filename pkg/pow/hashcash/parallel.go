package hashcash

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// best is the lowest matching nonce reported so far.
type best struct {
	mu    sync.Mutex
	found bool
	nonce uint64
}

func (b *best) offer(nonce uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.found || nonce < b.nonce {
		b.found = true
		b.nonce = nonce
	}
}

// beats reports whether a match already sits below start.
func (b *best) beats(start uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.found && b.nonce < start
}

func (b *best) get() (uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nonce, b.found
}

// mineParallel splits [0, maxNonce] into chunks that workers claim in
// increasing order. A worker only gives up on chunks that start above the
// current best, so every chunk below the winner is scanned to the end and
// the result is the same nonce the sequential loop returns.
func (m *Miner) mineParallel(ctx context.Context, blockData string) (Result, error) {
	var (
		next      atomic.Uint64
		winner    best
		lastChunk = m.maxNonce / m.chunkSize
	)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < m.workers; w++ {
		g.Go(func() error {
			s := newScanner(blockData, m.difficulty)
			for {
				idx := next.Add(1) - 1
				if idx > lastChunk {
					return nil
				}
				start := idx * m.chunkSize
				if winner.beats(start) {
					return nil
				}

				end := m.maxNonce
				if m.maxNonce-start >= m.chunkSize {
					end = start + m.chunkSize - 1
				}

				nonce, found, err := s.scan(gctx, start, end, m.progress)
				if err != nil {
					return err
				}
				if found {
					winner.offer(nonce)
					return nil
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	nonce, found := winner.get()
	if !found {
		return Result{}, fmt.Errorf("%w: no nonce in [0, %d]", ErrSearchExhausted, m.maxNonce)
	}
	return Result{Nonce: nonce, Digest: ComputeDigest(blockData, nonce)}, nil
}
