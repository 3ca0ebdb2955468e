package runner

// Partition is a contiguous half-open range [Start, Start+Count) of the key
// sequence, consumed by exactly one worker.
type Partition struct {
	Start int
	Count int
}

// PartitionWorkload splits total items across workers in key order. The first
// total%workers partitions take one extra item, so partition sizes differ by at
// most one and their union covers [0, total) exactly once. When workers exceeds
// total, the surplus partitions are empty but still produced, so every worker
// is spawned and joined uniformly. Callers must reject workers < 1 beforehand.
func PartitionWorkload(total, workers int) []Partition {
	base := total / workers
	rem := total % workers

	parts := make([]Partition, workers)
	start := 0
	for i := range parts {
		count := base
		if i < rem {
			count++
		}
		parts[i] = Partition{Start: start, Count: count}
		start += count
	}
	return parts
}
