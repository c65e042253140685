package bench

import (
	"fmt"
	mathrand "math/rand"
	"time"
)

// Worker executes one run's worth of operations against a shared
// device. the device is borrowed from the coordinator; the rng, buffer
// and pacer are exclusively owned. io and run times are written only by
// the worker's own goroutine and read after it has been joined.
type Worker struct {
	cfg *Config
	dev Device

	rng   *mathrand.Rand
	buf   *AlignedBuf
	pacer *Pacer

	ioTime  time.Duration
	runTime time.Duration
}

// NewWorker builds a worker for the given run configuration, sharing
// dev with its siblings. each worker gets an independent rng seed so
// random read offsets do not correlate across workers.
func NewWorker(cfg *Config, dev Device, seed int64) *Worker {
	w := &Worker{
		cfg: cfg,
		dev: dev,
		rng: mathrand.New(mathrand.NewSource(seed)),
		buf: NewAlignedBuf(cfg.BlockSize, cfg.Align),
	}
	if cfg.Bandwidth > 0 {
		w.pacer = NewPacer(cfg.Bandwidth, cfg.BlockSize)
	}
	if cfg.Op == Write {
		// write workers send the same block of rng-derived bytes every
		// operation; with a fixed seed the content is reproducible
		w.rng.Read(w.buf.Bytes())
	}
	return w
}

// Run performs exactly BlockCount operations of the configured kind,
// pacing between them when a bandwidth target is set. any io error or
// zero-byte transfer aborts the run; a short transfer is retried until
// the full block has moved.
func (w *Worker) Run() error {
	start := time.Now()

	if w.pacer != nil {
		w.pacer.Start(time.Now())
		for i := int64(0); i < w.cfg.BlockCount; i++ {
			if err := w.rwOneBlock(); err != nil {
				return err
			}
			w.pacer.Wait()
		}
	} else {
		for i := int64(0); i < w.cfg.BlockCount; i++ {
			if err := w.rwOneBlock(); err != nil {
				return err
			}
		}
	}

	w.runTime += time.Since(start)
	return nil
}

// IOTime returns the summed duration of the individual operations.
func (w *Worker) IOTime() time.Duration {
	return w.ioTime
}

// RunTime returns the wall-clock duration of the whole Run call,
// including pacing waits.
func (w *Worker) RunTime() time.Duration {
	return w.runTime
}

// rwOneBlock transfers a single block and accounts its duration.
func (w *Worker) rwOneBlock() error {
	start := time.Now()

	var err error
	switch w.cfg.Op {
	case RandRead:
		// fresh uniform block index per operation; repeats are fine
		off := w.rng.Int63n(w.cfg.BlockCount) * w.cfg.BlockSize
		err = w.preadFull(off)
	case SeqRead:
		err = w.readFull()
	case Write:
		err = w.writeFull()
	default:
		return fmt.Errorf("unknown operation kind %d", w.cfg.Op)
	}
	if err != nil {
		return err
	}

	w.ioTime += time.Since(start)
	return nil
}

// preadFull reads one full block at the given offset, retrying short
// reads with the offset and buffer cursor advanced.
func (w *Worker) preadFull(off int64) error {
	buf := w.buf.Bytes()
	for len(buf) > 0 {
		n, err := w.dev.Pread(buf, off)
		if err != nil {
			return fmt.Errorf("pread: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("pread: unexpected end of file at offset %d", off)
		}
		buf = buf[n:]
		off += int64(n)
	}
	return nil
}

// readFull reads one full block at the descriptor's cursor.
func (w *Worker) readFull() error {
	buf := w.buf.Bytes()
	for len(buf) > 0 {
		n, err := w.dev.Read(buf)
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("read: unexpected end of file")
		}
		buf = buf[n:]
	}
	return nil
}

// writeFull writes one full block at the descriptor's cursor.
func (w *Worker) writeFull() error {
	buf := w.buf.Bytes()
	for len(buf) > 0 {
		n, err := w.dev.Write(buf)
		if err != nil {
			return fmt.Errorf("write: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("write: zero-byte write")
		}
		buf = buf[n:]
	}
	return nil
}
