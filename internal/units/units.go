// Package units parses human-readable size and bandwidth strings as
// given on the command line, e.g. "4K", "128MiB", "1GB", "4096KB/s".
package units

import (
	"fmt"
	"strconv"
	"strings"
)

// multipliers for each recognized size suffix. bare binary suffixes
// (K, M, G) and their explicit IEC forms (KiB, MiB, GiB) are powers of
// 1024, while the SI forms (KB, MB, GB) are powers of 1000.
var suffixes = map[string]int64{
	"":    1,
	"K":   1024,
	"KiB": 1024,
	"KB":  1000,
	"M":   1024 * 1024,
	"MiB": 1024 * 1024,
	"MB":  1000 * 1000,
	"G":   1024 * 1024 * 1024,
	"GiB": 1024 * 1024 * 1024,
	"GB":  1000 * 1000 * 1000,
}

// ParseSize converts a size string of the form <digits><suffix> into a
// byte count. an empty suffix means plain bytes.
func ParseSize(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	// find where the digits end and the suffix begins
	i := len(s)
	for i > 0 && !isDigit(s[i-1]) {
		i--
	}
	if i == 0 {
		return 0, fmt.Errorf("invalid size %q: no digits", s)
	}

	// look up the suffix multiplier
	unit, ok := suffixes[s[i:]]
	if !ok {
		return 0, fmt.Errorf("invalid size %q: unknown suffix %q", s, s[i:])
	}

	// parse the numeric part, which must be digits only
	for j := 0; j < i; j++ {
		if !isDigit(s[j]) {
			return 0, fmt.Errorf("invalid size %q: bad number %q", s, s[:i])
		}
	}
	n, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}

	return n * unit, nil
}

// ParseBandwidth converts a bandwidth string of the form <size>B/s
// (e.g. "4MB/s", "409600B/s") into bytes per second.
func ParseBandwidth(s string) (int64, error) {
	// the shortest valid form is a single digit followed by "B/s"
	if len(s) < 4 || !strings.HasSuffix(s, "B/s") {
		return 0, fmt.Errorf("invalid bandwidth %q: want <size>B/s", s)
	}

	// the size parser handles the trailing B as part of suffixes like
	// "KiB", but a bare "B" is not in its table, so strip "/s" and, for
	// the plain-bytes case, the "B" as well
	sz := strings.TrimSuffix(s, "/s")
	if isDigit(sz[len(sz)-2]) {
		sz = sz[:len(sz)-1]
	}

	bw, err := ParseSize(sz)
	if err != nil {
		return 0, fmt.Errorf("invalid bandwidth %q: %w", s, err)
	}
	return bw, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
