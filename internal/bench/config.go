// Package bench contains the worker engine: aligned direct-io buffers,
// bandwidth pacing, the per-worker operation loop, and the run
// coordinator that fans workers out over a shared descriptor.
package bench

// OpKind selects the operation a worker performs on each iteration.
type OpKind int

const (
	// RandRead issues positioned reads at uniformly random block offsets
	RandRead OpKind = iota

	// SeqRead issues reads at the descriptor's current position
	SeqRead

	// Write issues writes at the descriptor's current position
	Write
)

// String returns the command-line name of the operation kind.
func (k OpKind) String() string {
	switch k {
	case RandRead:
		return "randread"
	case SeqRead:
		return "read"
	case Write:
		return "write"
	default:
		return "unknown"
	}
}

// CursorBased reports whether the operation consumes the descriptor's
// shared file-position cursor. cursor-based kinds cannot safely run on
// more than one worker sharing a descriptor; positioned reads can.
func (k OpKind) CursorBased() bool {
	return k == SeqRead || k == Write
}

// Config holds the parameters of a single run. it is shared read-only
// by every worker of the run and must not be mutated after Run starts.
type Config struct {
	// required alignment in bytes for buffers and offsets, the target's
	// block size. must be a power of two
	Align int64

	// target bytes per second, or 0 for unthrottled
	Bandwidth int64

	// bytes transferred per operation
	BlockSize int64

	// operation kind performed by every worker
	Op OpKind

	// number of operations each worker performs
	BlockCount int64
}
