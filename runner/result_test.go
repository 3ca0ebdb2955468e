package runner

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResultString(t *testing.T) {
	r := &Result{
		Operation:   "mixed",
		Concurrency: 32,
		Requests:    10000,
		ValueSize:   1024,
		Operations:  20000,
		Duration:    2 * time.Second,
		Throughput:  10000,
	}
	s := r.String()
	for _, want := range []string{
		"Operation: mixed",
		"Clients: 32",
		"Requests: 10000",
		"Value size: 1024 bytes",
		"Total time: 2.00 seconds",
		"Throughput: 10000.00 ops/sec",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestResultAppendCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	r := &Result{
		RunID:       "test-run",
		Operation:   "put",
		Concurrency: 8,
		Requests:    100,
		ValueSize:   64,
		Operations:  100,
		Duration:    1500 * time.Millisecond,
		Throughput:  66.67,
	}

	if err := r.AppendCSV(path); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := r.AppendCSV(path); err != nil {
		t.Fatalf("second append: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading results CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d CSV records, want header + 2 rows", len(records))
	}
	if records[0][0] != "run_id" {
		t.Errorf("header starts with %q, want run_id", records[0][0])
	}
	row := records[1]
	if row[0] != "test-run" || row[1] != "put" || row[6] != "1500" {
		t.Errorf("unexpected first row: %v", row)
	}
}
