// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/xochip/internal/xochip"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM image from the given file. ROMs are headerless raw
// images and must fit into the machine memory.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads a ROM image from the reader. Reading stops one byte
// past the machine memory size so that oversized images are detected
// without reading them completely.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, xochip.MemorySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}
	if len(data) > xochip.MemorySize {
		return nil, fmt.Errorf("ROM exceeds %d bytes: %w", xochip.MemorySize, xochip.ErrRomTooLarge)
	}
	return data, nil
}
