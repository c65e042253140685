// Package output formats run reports for display.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jessegalley/diobench/internal/bench"
)

// Format represents the supported output format types
type Format string

// supported output format constants
const (
	// table format outputs results in a human-readable table
	TableFormat Format = "table"

	// json format outputs results as a json object
	JSONFormat Format = "json"

	// flat format outputs results as space-separated values
	FlatFormat Format = "flat"
)

// ValidateFormat checks if the provided format string is a valid output format
func ValidateFormat(format string) (Format, error) {
	// convert format to Format type
	f := Format(strings.ToLower(format))

	// check if format is supported
	switch f {
	case TableFormat, JSONFormat, FlatFormat:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format '%s'. supported formats are: table, json, flat", format)
	}
}

// FormatReports renders per-worker reports according to the specified
// format. when grouped is set, reports holds a single combined entry.
func FormatReports(reports []bench.Report, grouped bool, format Format) (string, error) {
	switch format {
	case TableFormat:
		var sb strings.Builder

		// write table header
		sb.WriteString(fmt.Sprintf("\n%8s  %12s  %14s\n", "job", "BW (MB/s)", "avg lat (ns)"))

		// write one row per report
		for i, r := range reports {
			label := fmt.Sprintf("%d", i)
			if grouped {
				label = "all"
			}
			sb.WriteString(fmt.Sprintf("%8s  %12.2f  %14d\n",
				label, r.Throughput/1e6, r.AvgLatency.Nanoseconds()))
		}

		return sb.String(), nil

	case JSONFormat:
		// build a json-friendly view of the reports
		type jsonReport struct {
			Job           string  `json:"job"`
			ThroughputMBs float64 `json:"throughput_mbs"`
			AvgLatencyNs  int64   `json:"avg_latency_ns"`
		}

		out := make([]jsonReport, len(reports))
		for i, r := range reports {
			label := fmt.Sprintf("%d", i)
			if grouped {
				label = "all"
			}
			out[i] = jsonReport{
				Job:           label,
				ThroughputMBs: r.Throughput / 1e6,
				AvgLatencyNs:  r.AvgLatency.Nanoseconds(),
			}
		}

		jsonBytes, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal json: %w", err)
		}

		return string(jsonBytes) + "\n", nil

	case FlatFormat:
		// space-separated throughput/latency pairs, one line per report
		var sb strings.Builder
		for _, r := range reports {
			sb.WriteString(fmt.Sprintf("%.2f %d\n",
				r.Throughput/1e6, r.AvgLatency.Nanoseconds()))
		}
		return sb.String(), nil

	default:
		// return error for unsupported format
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
