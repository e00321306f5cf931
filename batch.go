package tiktoken

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// workerCountEnv is the worker-pool thread count override of spec.md §6.4.
const workerCountEnv = "TIKTOKEN_NUM_THREADS"

// EncodeBatch encodes every text independently and returns results in the
// same order as the input (spec.md §4.5). When the tokenizer was built
// with WithParallel(true), the batch is sharded across a bounded worker
// pool; otherwise it runs sequentially in the calling goroutine.
func (t *Tokenizer) EncodeBatch(texts []string) [][]TokenID {
	out := make([][]TokenID, len(texts))
	if !t.parallel || len(texts) < 2 {
		for i, text := range texts {
			out[i] = t.Encode(text)
		}
		return out
	}
	runBatch(len(texts), func(i int) {
		out[i] = t.Encode(texts[i])
	})
	return out
}

// DecodeBatch decodes every token list independently, preserving input
// order (spec.md §4.5).
func (t *Tokenizer) DecodeBatch(tokenLists [][]TokenID) [][]byte {
	out := make([][]byte, len(tokenLists))
	if !t.parallel || len(tokenLists) < 2 {
		for i, tokens := range tokenLists {
			out[i] = t.Decode(tokens)
		}
		return out
	}
	runBatch(len(tokenLists), func(i int) {
		out[i] = t.Decode(tokenLists[i])
	})
	return out
}

// batchWorkers returns how many batch items may run at once: the
// TIKTOKEN_NUM_THREADS value when it is a positive integer, otherwise
// runtime.GOMAXPROCS(0). It is read on every call, following the teacher
// pack's CompressParallel/DecompressParallel sizing
// (ha1tch-unz/pkg/ans.CompressParallel uses runtime.GOMAXPROCS(0) as a
// semaphore capacity around a per-item goroutine).
func batchWorkers() int {
	if v := os.Getenv(workerCountEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}

// runBatch runs fn(i) for every i in [0, n), one goroutine per item with
// at most batchWorkers() of them running fn at once, and waits for all of
// them to finish. A panic in one item is
// recovered, tagged with a uuid correlation ID, and re-raised on the
// calling goroutine after every worker has finished, so one bad input
// cannot silently truncate the rest of the batch or leave goroutines
// running past the call's return.
func runBatch(n int, fn func(i int)) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchWorkers())
	var panicOnce sync.Once
	var panicErr *PanicError

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			defer func() {
				if r := recover(); r != nil {
					panicOnce.Do(func() {
						panicErr = &PanicError{
							CorrelationID: uuid.NewString(),
							Index:         idx,
							Recovered:     r,
						}
					})
				}
			}()
			fn(idx)
		}(i)
	}
	wg.Wait()

	if panicErr != nil {
		panic(panicErr)
	}
}
