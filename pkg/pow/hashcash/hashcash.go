package hashcash

/*
	How the miner works:

	Preimage:
	The block data is used as-is and the nonce is appended in base-10 with no
	separator, so block "test" with nonce 25 hashes the bytes "test25".
	Any delimiter would change every digest and break compatibility.

	Digest:
	SHA-256 of the preimage, rendered as 64 lowercase hex characters.

	Difficulty:
	The number of leading '0' hex characters a digest needs. Each extra zero
	multiplies the expected work by 16. Zero is trivially satisfied by nonce 0,
	64 is the ceiling since a digest has no more characters than that.

	Verification:
	A single digest computation, which is what makes the proof cheap to check
	and expensive to produce.
*/

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MaxDifficulty is the hex length of a SHA-256 digest.
	MaxDifficulty = sha256.Size * 2

	defaultChunkSize = 1 << 14
	checkInterval    = 1 << 12
)

var (
	ErrDifficultyRange = errors.New("difficulty out of acceptable range")
	ErrInvalidWorkers  = errors.New("invalid worker configuration")
	ErrSearchExhausted = errors.New("nonce search space exhausted")
)

// ProgressFunc receives the number of digests computed since its previous call.
// In parallel mode it is called from several goroutines.
type ProgressFunc func(hashes uint64)

// Result is a successful mining run.
type Result struct {
	Nonce  uint64
	Digest string
}

// Miner searches for nonces whose digest has a fixed number of leading zeros.
type Miner struct {
	difficulty int
	prefix     string
	maxNonce   uint64
	workers    int
	chunkSize  uint64
	progress   ProgressFunc
}

// Option configures a Miner.
type Option func(*Miner) error

// WithMaxNonce bounds the search to [0, n].
func WithMaxNonce(n uint64) Option {
	return func(m *Miner) error {
		m.maxNonce = n
		return nil
	}
}

// WithWorkers sets how many goroutines share the search. One or zero keeps
// the sequential loop.
func WithWorkers(n int) Option {
	return func(m *Miner) error {
		if n < 0 {
			return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidWorkers, n)
		}
		m.workers = n
		return nil
	}
}

// WithChunkSize sets how many consecutive nonces a worker claims at once.
func WithChunkSize(n uint64) Option {
	return func(m *Miner) error {
		if n == 0 {
			return fmt.Errorf("%w: chunk size must be positive", ErrInvalidWorkers)
		}
		m.chunkSize = n
		return nil
	}
}

// WithProgress installs a progress hook.
func WithProgress(fn ProgressFunc) Option {
	return func(m *Miner) error {
		m.progress = fn
		return nil
	}
}

// NewMiner initializes a Miner with the specified difficulty.
func NewMiner(difficulty int, opts ...Option) (*Miner, error) {
	if difficulty < 0 || difficulty > MaxDifficulty {
		return nil, fmt.Errorf("%w: difficulty must be between 0 and %d, got %d", ErrDifficultyRange, MaxDifficulty, difficulty)
	}

	m := &Miner{
		difficulty: difficulty,
		prefix:     strings.Repeat("0", difficulty),
		maxNonce:   math.MaxUint64,
		workers:    1,
		chunkSize:  defaultChunkSize,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Difficulty returns the required number of leading zero hex characters.
func (m *Miner) Difficulty() int {
	return m.difficulty
}

// ComputeDigest returns the hex SHA-256 of blockData followed by the decimal nonce.
func ComputeDigest(blockData string, nonce uint64) string {
	sum := sha256.Sum256(appendPreimage(nil, blockData, nonce))
	return hex.EncodeToString(sum[:])
}

// ComputeDigest is the package-level ComputeDigest; it does not depend on difficulty.
func (m *Miner) ComputeDigest(blockData string, nonce uint64) string {
	return ComputeDigest(blockData, nonce)
}

// MeetsDifficulty reports whether a hex digest starts with enough zeros.
func (m *Miner) MeetsDifficulty(digest string) bool {
	return strings.HasPrefix(digest, m.prefix)
}

// IsValid checks if nonce is a proof of work for blockData.
func (m *Miner) IsValid(blockData string, nonce uint64) bool {
	return m.MeetsDifficulty(ComputeDigest(blockData, nonce))
}

// Mine returns the smallest nonce whose digest meets the difficulty.
// It fails with ErrSearchExhausted when the nonce ceiling is passed and with
// the context's error when ctx is done.
func (m *Miner) Mine(ctx context.Context, blockData string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if m.workers > 1 {
		return m.mineParallel(ctx, blockData)
	}

	s := newScanner(blockData, m.difficulty)
	nonce, found, err := s.scan(ctx, 0, m.maxNonce, m.progress)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{}, fmt.Errorf("%w: no nonce in [0, %d]", ErrSearchExhausted, m.maxNonce)
	}
	return Result{Nonce: nonce, Digest: ComputeDigest(blockData, nonce)}, nil
}

// scanner holds the reusable preimage buffer for one goroutine.
type scanner struct {
	buf        []byte
	dataLen    int
	difficulty int
}

func newScanner(blockData string, difficulty int) *scanner {
	buf := make([]byte, 0, len(blockData)+20)
	buf = append(buf, blockData...)
	return &scanner{buf: buf, dataLen: len(blockData), difficulty: difficulty}
}

// scan tests nonces from..to in order and stops at the first match.
func (s *scanner) scan(ctx context.Context, from, to uint64, progress ProgressFunc) (uint64, bool, error) {
	var pending uint64
	flush := func() {
		if progress != nil && pending > 0 {
			progress(pending)
		}
		pending = 0
	}

	for nonce := from; ; nonce++ {
		s.buf = strconv.AppendUint(s.buf[:s.dataLen], nonce, 10)
		sum := sha256.Sum256(s.buf)
		pending++

		if hasLeadingZeroNibbles(sum, s.difficulty) {
			flush()
			return nonce, true, nil
		}
		if nonce == to {
			flush()
			return 0, false, nil
		}
		if pending == checkInterval {
			flush()
			if err := ctx.Err(); err != nil {
				return 0, false, err
			}
		}
	}
}

// hasLeadingZeroNibbles is the hex prefix test done on raw bytes: two hex
// characters per byte, high nibble first.
func hasLeadingZeroNibbles(sum [sha256.Size]byte, n int) bool {
	full := n / 2
	for i := 0; i < full; i++ {
		if sum[i] != 0 {
			return false
		}
	}
	if n%2 == 1 {
		return sum[full]>>4 == 0
	}
	return true
}

func appendPreimage(dst []byte, blockData string, nonce uint64) []byte {
	dst = append(dst, blockData...)
	return strconv.AppendUint(dst, nonce, 10)
}
