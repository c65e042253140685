package bench

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Device is the descriptor a worker issues transfers against. Pread is
// position-independent and safe to share between workers; Read and
// Write consume the descriptor's shared cursor and assume exclusive
// access. all three may return short counts, which the worker retries.
type Device interface {
	Pread(p []byte, off int64) (int, error)
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// FD is a Device over a raw file descriptor opened with O_DIRECT.
type FD struct {
	fd   int
	path string
}

// OpenRead opens the target read-only, in direct-io mode when direct
// is set.
func OpenRead(path string, direct bool) (*FD, error) {
	return open(path, unix.O_RDONLY, direct)
}

// OpenWrite opens the target write-only, creating or truncating it, in
// direct-io mode when direct is set. regular files are created mode
// 0600.
func OpenWrite(path string, direct bool) (*FD, error) {
	return open(path, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, direct)
}

func open(path string, flags int, direct bool) (*FD, error) {
	if direct {
		flags |= unix.O_DIRECT
	}
	fd, err := unix.Open(path, flags, 0600)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &FD{fd: fd, path: path}, nil
}

// Pread reads into p at the given offset without moving the cursor.
func (f *FD) Pread(p []byte, off int64) (int, error) {
	return unix.Pread(f.fd, p, off)
}

// Read reads into p at the current cursor position.
func (f *FD) Read(p []byte) (int, error) {
	return unix.Read(f.fd, p)
}

// Write writes p at the current cursor position.
func (f *FD) Write(p []byte) (int, error) {
	return unix.Write(f.fd, p)
}

// Size returns the target's current size in bytes.
func (f *FD) Size() (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(f.fd, &st); err != nil {
		return 0, fmt.Errorf("fstat %s: %w", f.path, err)
	}
	return st.Size, nil
}

// SectorSize returns the block size direct-io transfers against this
// target must align to.
func (f *FD) SectorSize() (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(f.fd, &st); err != nil {
		return 0, fmt.Errorf("fstat %s: %w", f.path, err)
	}
	return int64(st.Blksize), nil
}

// Close releases the descriptor.
func (f *FD) Close() error {
	return unix.Close(f.fd)
}
