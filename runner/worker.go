package runner

import (
	"context"
	"fmt"

	"github.com/ZeroLiu2018/mcbench/constants"
	"github.com/ZeroLiu2018/mcbench/store"
)

// runWorker processes one partition as a sequential scan. Get responses are
// read and discarded: the benchmark measures throughput, not correctness.
// Under mixed operation each key incurs a put immediately followed by a get,
// ordered within this worker only. The first failed call stops the remaining
// iterations and the error aborts the whole run.
func runWorker(ctx context.Context, st store.Store, ks *KeySpace, p Partition, op string) error {
	keys := ks.Keys[p.Start : p.Start+p.Count]
	for _, key := range keys {
		switch op {
		case constants.OP_PUT:
			if err := st.Put(ctx, key, ks.Value); err != nil {
				return fmt.Errorf("put %s: %w", key, err)
			}
		case constants.OP_GET:
			if _, err := st.Get(ctx, key); err != nil {
				return fmt.Errorf("get %s: %w", key, err)
			}
		case constants.OP_MIXED:
			if err := st.Put(ctx, key, ks.Value); err != nil {
				return fmt.Errorf("put %s: %w", key, err)
			}
			if _, err := st.Get(ctx, key); err != nil {
				return fmt.Errorf("get %s: %w", key, err)
			}
		default:
			return fmt.Errorf("unknown operation %q", op)
		}
	}
	return nil
}
