/*
Copyright © 2025 jesse galley <jesse@jessegalley.net>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/jessegalley/diobench/internal/bench"
	"github.com/jessegalley/diobench/internal/layout"
	"github.com/jessegalley/diobench/internal/output"
	"github.com/jessegalley/diobench/internal/units"
)

// program flags defined as global variables for access across functions
var (
	sizeArg      string // total bytes each job transfers, as a size string
	blockSizeArg string // block size per operation, as a size string
	bandwidthArg string // target bandwidth as <size>B/s, empty is unthrottled
	numJobs      int    // number of concurrent jobs
	groupReport  bool   // report all jobs as a single group
	randSeed     int64  // seed for random offsets (0 seeds from the clock)
	directIO     bool   // whether to use direct io
	outFmt       string // output format
	verbose      bool   // print the resolved run parameters
	version      bool   // print version and exit
)

// program info const
const progVersion string = "0.1.0"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "diobench",
	Short: "Measure direct i/o throughput and latency of a file or block device.",
	Long: `diobench issues block-aligned direct i/o against a target file or
block device and reports sustained throughput and average per-operation
latency, optionally throttled to a target bandwidth and spread over
multiple concurrent jobs.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// check if version flag was set
		if version {
			fmt.Printf("diobench v%s\njesse@jessegalley.net\ngithub.com/jessegalley/diobench\n", progVersion)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// define command line flags, writing values to our global variables
	rootCmd.PersistentFlags().StringVarP(&sizeArg, "size", "s", "", "total bytes each job transfers (e.g. 1G, 512MiB)")
	rootCmd.PersistentFlags().StringVarP(&blockSizeArg, "bs", "b", "4K", "block size for io operations (e.g. 4K, 1M)")
	rootCmd.PersistentFlags().StringVar(&bandwidthArg, "bandwidth", "", "target bandwidth as <size>B/s (e.g. 4MB/s), unthrottled if unset")
	rootCmd.PersistentFlags().IntVarP(&numJobs, "numjobs", "n", 1, "number of concurrent jobs")
	rootCmd.PersistentFlags().BoolVar(&groupReport, "group-reporting", false, "report statistics for all jobs as a whole instead of per job")
	rootCmd.PersistentFlags().Int64Var(&randSeed, "randseed", 0, "seed for random offsets (0 seeds from the clock)")
	rootCmd.PersistentFlags().BoolVarP(&directIO, "direct", "d", true, "use direct io (o_direct)")
	rootCmd.PersistentFlags().StringVar(&outFmt, "format", "table", "output format (table, json, or flat)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print resolved run parameters")
	rootCmd.PersistentFlags().BoolVarP(&version, "version", "V", false, "print version and exit")
}

// runParams holds the flag values after parsing and validation
type runParams struct {
	size       int64 // total bytes per job
	blockSize  int64 // bytes per operation
	bandwidth  int64 // target bytes per second, 0 if unthrottled
	blockCount int64 // operations per job
	seed       int64 // root rng seed
}

// resolveParams parses the size-string flags and validates the
// combination, performing the checks the core assumes have been done
func resolveParams() (runParams, error) {
	var p runParams
	var err error

	if sizeArg == "" {
		return p, fmt.Errorf("--size is required")
	}
	p.size, err = units.ParseSize(sizeArg)
	if err != nil {
		return p, err
	}
	p.blockSize, err = units.ParseSize(blockSizeArg)
	if err != nil {
		return p, err
	}
	if p.blockSize <= 0 {
		return p, fmt.Errorf("bs must be positive, got %s", blockSizeArg)
	}

	if p.size%p.blockSize != 0 {
		return p, fmt.Errorf("bs %s does not divide size %s", blockSizeArg, sizeArg)
	}
	p.blockCount = p.size / p.blockSize

	if bandwidthArg != "" {
		p.bandwidth, err = units.ParseBandwidth(bandwidthArg)
		if err != nil {
			return p, err
		}
		if p.bandwidth <= 0 {
			return p, fmt.Errorf("bandwidth must be positive, got %s", bandwidthArg)
		}
	}

	if numJobs < 1 {
		return p, fmt.Errorf("numjobs must be at least 1, got %d", numJobs)
	}

	p.seed = randSeed
	if p.seed == 0 {
		p.seed = time.Now().UnixNano()
	}

	return p, nil
}

// runBench executes a full benchmark of the given kind against target
// and prints the report. shared by all three subcommands.
func runBench(op bench.OpKind, target string) error {
	// validate output format
	format, err := output.ValidateFormat(outFmt)
	if err != nil {
		return err
	}

	params, err := resolveParams()
	if err != nil {
		return err
	}

	// a zero-length run has nothing to measure
	if params.blockCount == 0 {
		return nil
	}

	// open the target; read modes provision it first so every offset
	// the run touches is backed
	var dev *bench.FD
	switch op {
	case bench.Write:
		if numJobs > 1 {
			return fmt.Errorf("write supports only a single job, got numjobs=%d", numJobs)
		}
		dev, err = bench.OpenWrite(target, directIO)
	default:
		dev, err = layout.EnsureReadable(target, params.size, params.blockSize, directIO, params.seed)
	}
	if err != nil {
		return err
	}
	defer dev.Close()

	// buffers and offsets align to the target's block size
	align, err := dev.SectorSize()
	if err != nil {
		return err
	}

	cfg := &bench.Config{
		Align:      align,
		Bandwidth:  params.bandwidth,
		BlockSize:  params.blockSize,
		Op:         op,
		BlockCount: params.blockCount,
	}

	if verbose {
		spew.Fdump(os.Stderr, cfg)
	}

	// announce test start
	fmt.Fprintf(os.Stderr, "starting %s test with %d jobs\n", op, numJobs)

	results, span, err := bench.Run(cfg, dev, numJobs, params.seed)
	if err != nil {
		return err
	}

	// derive reports per job, or one combined report when requested
	grouped := numJobs > 1 && groupReport
	var reports []bench.Report
	if grouped {
		reports = []bench.Report{bench.Grouped(cfg, results, span)}
	} else {
		reports = bench.PerWorker(cfg, results)
	}

	// format and print the results
	out, err := output.FormatReports(reports, grouped, format)
	if err != nil {
		return err
	}
	fmt.Print(out)

	return nil
}
