package runner

import (
	"fmt"
	"math/rand"
)

// KeySpace is the full ordered key sequence for a run plus the one payload all
// workers share. It is built before any worker starts and read-only afterwards,
// so no two workers can ever target the same key through independent generation.
type KeySpace struct {
	Keys  []string
	Value []byte
}

// NewKeySpace generates total keys and a payload of exactly valueSize bytes.
// Keys are derived from their index, so pairwise distinctness holds by
// construction. The payload content only exercises transfer size and does not
// need to be reproducible across runs.
func NewKeySpace(total, valueSize int, rg *rand.Rand) *KeySpace {
	keys := make([]string, total)
	for i := range keys {
		keys[i] = fmt.Sprintf("key_%d", i)
	}
	value := make([]byte, valueSize)
	// rand.Rand.Read is documented to never fail
	_, _ = rg.Read(value)
	return &KeySpace{Keys: keys, Value: value}
}
