package tiktoken

import (
	"hash/fnv"
	"runtime"
	"sync"
)

// scratch is the per-operation working state an encode call needs: a
// reusable token buffer and (for the backtrack encoder, which owns its
// own lazily-built automaton) nothing else — most encoders are
// stateless, so this mostly exists to amortize slice allocation.
type scratch struct {
	tokens []TokenID
}

func newScratch() *scratch {
	return &scratch{tokens: make([]TokenID, 0, 64)}
}

// resourcePool is the bounded, non-thread-local pool spec.md §5.2 and §9
// describe: buckets indexed by a hash of a stable thread-identity value,
// each guarded by its own try-lock so the fast path never blocks on a
// global lock. On contention for a bucket, the caller falls back to
// allocating a fresh scratch value rather than waiting, per "on
// contention, a worker may briefly create an additional instance."
//
// Go has no goroutine-local storage, so "thread identity" here is a
// pointer to a small per-call marker value the caller allocates on its
// own stack; its address is a stable, cheap-to-hash proxy for "this
// call's identity" for the lifetime of one encode/decode operation,
// which is exactly the granularity spec.md needs (acquire on entry,
// release on exit).
type resourcePool struct {
	buckets []poolBucket
}

type poolBucket struct {
	mu    sync.Mutex
	value *scratch
}

func newResourcePool(size int) *resourcePool {
	if size < 1 {
		size = 1
	}
	return &resourcePool{buckets: make([]poolBucket, size)}
}

func defaultPoolSize() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// acquire returns a scratch buffer for the calling operation, identified
// by identity (typically the address of a local variable at the call
// site). release must be called exactly once to return it to the pool.
func (p *resourcePool) acquire(identity uintptr) (*scratch, func()) {
	idx := identityHash(identity) % uint64(len(p.buckets))
	b := &p.buckets[idx]

	if b.mu.TryLock() {
		if b.value == nil {
			b.value = newScratch()
		}
		s := b.value
		s.tokens = s.tokens[:0]
		return s, b.mu.Unlock
	}

	// Contended: allocate a private instance rather than blocking, per
	// spec.md §5's "on contention, a worker may briefly create an
	// additional instance."
	s := newScratch()
	return s, func() {}
}

func identityHash(identity uintptr) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	v := uint64(identity)
	for i := range buf {
		buf[i] = byte(v >> (8 * i))
	}
	h.Write(buf[:])
	return h.Sum64()
}
