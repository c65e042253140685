// Package layout provisions the benchmark target for read runs. a read
// test needs the target to back every byte it will touch, so an absent
// or undersized target is filled by a dedicated write pass before the
// measured run opens it.
package layout

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/jessegalley/diobench/internal/bench"
)

// EnsureReadable returns a read-only descriptor for path whose backing
// is at least size bytes. if the target is missing or too small it is
// rewritten with a single unthrottled write worker and reopened. only
// size sufficiency is checked, never content.
func EnsureReadable(path string, size, blockSize int64, direct bool, seed int64) (*bench.FD, error) {
	for {
		dev, err := bench.OpenRead(path, direct)
		if err != nil {
			if !errors.Is(err, unix.ENOENT) {
				return nil, err
			}
			fmt.Fprint(os.Stderr, "target file does not exist, writing...")
		} else {
			cur, err := dev.Size()
			if err != nil {
				dev.Close()
				return nil, err
			}
			if cur >= size {
				return dev, nil
			}
			dev.Close()
			fmt.Fprint(os.Stderr, "target file too small, rewriting...")
		}

		if err := fill(path, size, blockSize, direct, seed); err != nil {
			fmt.Fprintln(os.Stderr)
			return nil, err
		}
		fmt.Fprintln(os.Stderr, " done")
	}
}

// fill truncates the target and writes size bytes to it in blockSize
// blocks using the ordinary write worker, so the fill obeys the same
// alignment rules as the measured run.
func fill(path string, size, blockSize int64, direct bool, seed int64) error {
	dev, err := bench.OpenWrite(path, direct)
	if err != nil {
		return err
	}

	align, err := dev.SectorSize()
	if err != nil {
		dev.Close()
		return err
	}

	cfg := &bench.Config{
		Align:      align,
		BlockSize:  blockSize,
		Op:         bench.Write,
		BlockCount: size / blockSize,
	}
	if _, _, err := bench.Run(cfg, dev, 1, seed); err != nil {
		dev.Close()
		return fmt.Errorf("provisioning %s: %w", path, err)
	}

	if err := dev.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
