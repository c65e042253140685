package layout

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const blockSize = 4096

func TestEnsureReadableCreatesMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target")

	dev, err := EnsureReadable(path, 8*blockSize, blockSize, false, 1)
	if err != nil {
		t.Fatalf("EnsureReadable failed: %v", err)
	}
	defer dev.Close()

	size, err := dev.Size()
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if size < 8*blockSize {
		t.Errorf("provisioned size = %d, want at least %d", size, 8*blockSize)
	}
}

func TestEnsureReadableGrowsUndersized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target")
	if err := os.WriteFile(path, make([]byte, blockSize), 0600); err != nil {
		t.Fatal(err)
	}

	dev, err := EnsureReadable(path, 4*blockSize, blockSize, false, 1)
	if err != nil {
		t.Fatalf("EnsureReadable failed: %v", err)
	}
	defer dev.Close()

	size, err := dev.Size()
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if size < 4*blockSize {
		t.Errorf("rewritten size = %d, want at least %d", size, 4*blockSize)
	}
}

func TestEnsureReadableKeepsSufficient(t *testing.T) {
	// a target that is already big enough must be left untouched; the
	// check is size sufficiency only, content is never inspected
	path := filepath.Join(t.TempDir(), "target")
	content := bytes.Repeat([]byte{0x5a}, 4*blockSize)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatal(err)
	}

	dev, err := EnsureReadable(path, 2*blockSize, blockSize, false, 1)
	if err != nil {
		t.Fatalf("EnsureReadable failed: %v", err)
	}
	dev.Close()

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(after, content) {
		t.Error("sufficient target was rewritten")
	}
}
