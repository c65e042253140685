package bench

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// syncDev is a fakeDev that is safe for concurrent workers.
type syncDev struct {
	mu     sync.Mutex
	preads int
}

func (d *syncDev) Pread(p []byte, off int64) (int, error) {
	d.mu.Lock()
	d.preads++
	d.mu.Unlock()
	return len(p), nil
}

func (d *syncDev) Read(p []byte) (int, error)  { return len(p), nil }
func (d *syncDev) Write(p []byte) (int, error) { return len(p), nil }

func TestRunJoinsAllWorkers(t *testing.T) {
	cfg := &Config{Align: 4096, BlockSize: 4096, Op: RandRead, BlockCount: 50}
	dev := &syncDev{}

	results, span, err := Run(cfg, dev, 4, 7)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}
	if dev.preads != 4*50 {
		t.Errorf("preads = %d, want %d", dev.preads, 4*50)
	}

	// the run span covers every worker's whole loop
	for i, r := range results {
		if r.RunTime <= 0 {
			t.Errorf("worker %d: run time not recorded", i)
		}
		if r.RunTime > span {
			t.Errorf("worker %d: run time %v exceeds span %v", i, r.RunTime, span)
		}
	}
}

func TestRunRejectsCursorBasedConcurrency(t *testing.T) {
	dev := &syncDev{}

	for _, op := range []OpKind{SeqRead, Write} {
		cfg := &Config{Align: 4096, BlockSize: 4096, Op: op, BlockCount: 10}
		if _, _, err := Run(cfg, dev, 2, 1); err == nil {
			t.Errorf("%v with 2 jobs succeeded, want rejection", op)
		}

		// a single job is fine
		if _, _, err := Run(cfg, dev, 1, 1); err != nil {
			t.Errorf("%v with 1 job failed: %v", op, err)
		}
	}
}

func TestRunRejectsBadNumjobs(t *testing.T) {
	cfg := &Config{Align: 4096, BlockSize: 4096, Op: RandRead, BlockCount: 10}
	if _, _, err := Run(cfg, &syncDev{}, 0, 1); err == nil {
		t.Error("numjobs=0 succeeded, want error")
	}
}

func TestRunPropagatesWorkerError(t *testing.T) {
	cfg := &Config{Align: 4096, BlockSize: 4096, Op: SeqRead, BlockCount: 10}
	dev := &fakeDev{zeroAt: 2}

	_, _, err := Run(cfg, dev, 1, 1)
	if err == nil {
		t.Fatal("Run succeeded after worker fault, want error")
	}
	if !strings.Contains(err.Error(), "read") {
		t.Errorf("error %q does not name the failing operation", err)
	}
}

func TestRunSeedReproducible(t *testing.T) {
	cfg := &Config{Align: 4096, BlockSize: 4096, Op: RandRead, BlockCount: 32}

	a := &fakeDev{}
	if _, _, err := Run(cfg, a, 1, 99); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b := &fakeDev{}
	if _, _, err := Run(cfg, b, 1, 99); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if len(a.preads) != len(b.preads) {
		t.Fatalf("pread counts differ: %d vs %d", len(a.preads), len(b.preads))
	}
	for i := range a.preads {
		if a.preads[i].off != b.preads[i].off {
			t.Fatalf("offset sequence diverges at %d with the same seed", i)
		}
	}
}

func TestGroupedAggregation(t *testing.T) {
	cfg := &Config{Align: 4096, BlockSize: 4096, Op: RandRead, BlockCount: 100}
	results := []Result{
		{IOTime: 100 * time.Millisecond, RunTime: 1 * time.Second},
		{IOTime: 200 * time.Millisecond, RunTime: 2 * time.Second},
		{IOTime: 300 * time.Millisecond, RunTime: 3 * time.Second},
		{IOTime: 400 * time.Millisecond, RunTime: 4 * time.Second},
	}
	span := 4 * time.Second

	r := Grouped(cfg, results, span)

	// combined bytes over the whole run's span, not the sum of the
	// individual run times
	wantTP := float64(4096*100*4) / span.Seconds()
	if r.Throughput != wantTP {
		t.Errorf("grouped throughput = %f, want %f", r.Throughput, wantTP)
	}

	// 1s of io time over 400 operations
	wantLat := time.Second / 400
	if r.AvgLatency != wantLat {
		t.Errorf("grouped latency = %v, want %v", r.AvgLatency, wantLat)
	}
}

func TestPerWorkerReports(t *testing.T) {
	cfg := &Config{Align: 4096, BlockSize: 4096, Op: RandRead, BlockCount: 100}
	results := []Result{
		{IOTime: 100 * time.Millisecond, RunTime: 2 * time.Second},
		{IOTime: 300 * time.Millisecond, RunTime: 4 * time.Second},
	}

	reports := PerWorker(cfg, results)
	if len(reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(reports))
	}

	if want := float64(4096*100) / 2.0; reports[0].Throughput != want {
		t.Errorf("worker 0 throughput = %f, want %f", reports[0].Throughput, want)
	}
	if want := time.Millisecond; reports[0].AvgLatency != want {
		t.Errorf("worker 0 latency = %v, want %v", reports[0].AvgLatency, want)
	}
	if want := float64(4096*100) / 4.0; reports[1].Throughput != want {
		t.Errorf("worker 1 throughput = %f, want %f", reports[1].Throughput, want)
	}
	if want := 3 * time.Millisecond; reports[1].AvgLatency != want {
		t.Errorf("worker 1 latency = %v, want %v", reports[1].AvgLatency, want)
	}
}
