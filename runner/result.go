package runner

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Result is the aggregate outcome of one completed run. It is produced once,
// after every worker has terminated, and immutable thereafter.
type Result struct {
	RunID       string
	Operation   string
	Concurrency int
	Requests    int
	ValueSize   int
	// Operations is the logical operation count: Requests for put/get runs,
	// twice that under mixed since each key incurs a put and a get
	Operations int
	Duration   time.Duration
	Throughput float64 // logical operations per second
}

// String formats the summary block printed at the end of a run.
func (r *Result) String() string {
	return fmt.Sprintf(
		"Benchmark results:\n"+
			"Operation: %s\n"+
			"Clients: %d\n"+
			"Requests: %d\n"+
			"Value size: %d bytes\n"+
			"Total time: %.2f seconds\n"+
			"Throughput: %.2f ops/sec",
		r.Operation, r.Concurrency, r.Requests, r.ValueSize,
		r.Duration.Seconds(), r.Throughput)
}

var resultHeader = []string{
	"run_id",
	"operation",
	"concurrency",
	"requests",
	"value_size",
	"operations",
	"duration_ms",
	"throughput_ops_sec",
}

// AppendCSV appends the result as one row to the file at path, writing the
// header first when the file is new or empty.
func (r *Result) AppendCSV(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(resultHeader); err != nil {
			return err
		}
	}
	err = w.Write([]string{
		r.RunID,
		r.Operation,
		strconv.Itoa(r.Concurrency),
		strconv.Itoa(r.Requests),
		strconv.Itoa(r.ValueSize),
		strconv.Itoa(r.Operations),
		strconv.FormatInt(r.Duration.Milliseconds(), 10),
		strconv.FormatFloat(r.Throughput, 'f', 2, 64),
	})
	if err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
