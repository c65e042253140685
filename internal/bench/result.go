package bench

import "time"

// Result carries one worker's raw timings out of a run.
type Result struct {
	// summed duration of the worker's individual operations
	IOTime time.Duration

	// wall clock of the worker's whole loop, pacing included
	RunTime time.Duration
}

// Report is a throughput/latency pair ready for formatting.
type Report struct {
	// bytes per second
	Throughput float64

	// average per-operation latency
	AvgLatency time.Duration
}

// PerWorker derives one report per worker from its private timings.
func PerWorker(cfg *Config, results []Result) []Report {
	reports := make([]Report, len(results))
	bytes := cfg.BlockSize * cfg.BlockCount
	for i, r := range results {
		reports[i] = Report{
			Throughput: float64(bytes) / r.RunTime.Seconds(),
			AvgLatency: r.IOTime / time.Duration(cfg.BlockCount),
		}
	}
	return reports
}

// Grouped derives a single combined report: all workers' bytes over the
// wall-clock span of the whole concurrent run, and latency averaged
// over every operation of every worker.
func Grouped(cfg *Config, results []Result, span time.Duration) Report {
	var ioTime time.Duration
	for _, r := range results {
		ioTime += r.IOTime
	}
	n := int64(len(results))
	return Report{
		Throughput: float64(cfg.BlockSize*cfg.BlockCount*n) / span.Seconds(),
		AvgLatency: ioTime / time.Duration(cfg.BlockCount*n),
	}
}
