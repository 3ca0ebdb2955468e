package runner

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ZeroLiu2018/mcbench/config"
	"github.com/ZeroLiu2018/mcbench/constants"
	"github.com/ZeroLiu2018/mcbench/logger"
	"github.com/ZeroLiu2018/mcbench/store"
)

type opCall struct {
	op  string
	key string
}

// fakeStore records every call in arrival order and can be told to fail
// deterministically on one key.
type fakeStore struct {
	mu      sync.Mutex
	calls   []opCall
	data    map[string][]byte
	failKey string
	failErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (f *fakeStore) Put(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, opCall{op: "put", key: key})
	if key == f.failKey {
		return f.failErr
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, opCall{op: "get", key: key})
	if key == f.failKey {
		return nil, f.failErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) recorded() []opCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]opCall(nil), f.calls...)
}

func testConfig(total, concurrency int, op string) *config.BenchConfig {
	return &config.BenchConfig{
		TotalRequests: total,
		Concurrency:   concurrency,
		ValueSize:     8,
		Operation:     op,
		Seed:          1,
	}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(filepath.Join(t.TempDir(), "run.log"))
	if err != nil {
		t.Fatalf("creating test logger: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRunPutCountsOperations(t *testing.T) {
	fs := newFakeStore()
	res, err := New(testConfig(40, 5, constants.OP_PUT), fs, testLogger(t)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Operations != 40 {
		t.Errorf("Operations = %d, want 40", res.Operations)
	}
	if res.Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", res.Duration)
	}

	calls := fs.recorded()
	if len(calls) != 40 {
		t.Fatalf("store saw %d calls, want 40", len(calls))
	}
	seen := make(map[string]int)
	for _, c := range calls {
		if c.op != "put" {
			t.Fatalf("unexpected %s call for key %s", c.op, c.key)
		}
		seen[c.key]++
	}
	for key, n := range seen {
		if n != 1 {
			t.Errorf("key %s written %d times, want exactly once", key, n)
		}
	}
	if len(seen) != 40 {
		t.Errorf("%d distinct keys written, want 40", len(seen))
	}
}

func TestRunMixedDoublesOperations(t *testing.T) {
	fs := newFakeStore()
	res, err := New(testConfig(20, 4, constants.OP_MIXED), fs, testLogger(t)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Operations != 40 {
		t.Errorf("Operations = %d, want 40 (2x requests under mixed)", res.Operations)
	}

	var puts, gets int
	for _, c := range fs.recorded() {
		switch c.op {
		case "put":
			puts++
		case "get":
			gets++
		}
	}
	if puts != 20 || gets != 20 {
		t.Errorf("store saw %d puts and %d gets, want 20 of each", puts, gets)
	}
}

func TestRunGetPreFillPrecedesAllReads(t *testing.T) {
	const total = 30
	fs := newFakeStore()
	res, err := New(testConfig(total, 6, constants.OP_GET), fs, testLogger(t)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Operations != total {
		t.Errorf("Operations = %d, want %d", res.Operations, total)
	}

	calls := fs.recorded()
	if len(calls) != 2*total {
		t.Fatalf("store saw %d calls, want %d (pre-fill puts + timed gets)", len(calls), 2*total)
	}
	// The pre-fill pass is serial and complete before any worker starts, so
	// the first `total` recorded calls must all be puts.
	for i := 0; i < total; i++ {
		if calls[i].op != "put" {
			t.Fatalf("call %d is a %s, want pre-fill put before any get", i, calls[i].op)
		}
	}
	for i := total; i < len(calls); i++ {
		if calls[i].op != "get" {
			t.Fatalf("call %d is a %s, want only gets after pre-fill", i, calls[i].op)
		}
	}
}

func TestRunWorkerFailureAbortsRun(t *testing.T) {
	fs := newFakeStore()
	boom := errors.New("injected store failure")
	fs.failKey = "key_7"
	fs.failErr = boom

	res, err := New(testConfig(20, 4, constants.OP_PUT), fs, testLogger(t)).Run(context.Background())
	if err == nil {
		t.Fatal("Run() succeeded, want the injected failure surfaced")
	}
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want wrapped %v", err, boom)
	}
	if res != nil {
		t.Errorf("Run() returned a result alongside the error: %+v", res)
	}
}

func TestRunPreFillFailureAbortsBeforeWorkers(t *testing.T) {
	fs := newFakeStore()
	boom := errors.New("injected pre-fill failure")
	fs.failKey = "key_0"
	fs.failErr = boom

	_, err := New(testConfig(10, 2, constants.OP_GET), fs, testLogger(t)).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want wrapped %v", err, boom)
	}
	// Nothing beyond the failing pre-fill put may have reached the store.
	if calls := fs.recorded(); len(calls) != 1 {
		t.Errorf("store saw %d calls, want 1", len(calls))
	}
}

func TestRunMoreWorkersThanRequests(t *testing.T) {
	fs := newFakeStore()
	res, err := New(testConfig(3, 10, constants.OP_PUT), fs, testLogger(t)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Operations != 3 {
		t.Errorf("Operations = %d, want 3", res.Operations)
	}
	if len(fs.recorded()) != 3 {
		t.Errorf("store saw %d calls, want 3", len(fs.recorded()))
	}
}

func TestRunEmptyWorkload(t *testing.T) {
	fs := newFakeStore()
	res, err := New(testConfig(0, 4, constants.OP_PUT), fs, testLogger(t)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Operations != 0 {
		t.Errorf("Operations = %d, want 0", res.Operations)
	}
	if len(fs.recorded()) != 0 {
		t.Errorf("store saw %d calls, want none", len(fs.recorded()))
	}
}
