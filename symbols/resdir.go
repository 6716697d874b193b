package symbols

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/maruel/natural"
)

const (
	symbolsHeader  = "c4d_symbols.h"
	descriptionDir = "description"
)

// ErrNotResourceDir is returned for directories without c4d_symbols.h.
var ErrNotResourceDir = errors.New("not a resource directory")

// ResourceFiles lists symbol headers of a single plugin resource directory.
type ResourceFiles struct {
	Dir          string
	Symbols      string   // c4d_symbols.h
	Descriptions []string // description/*.h in natural order
}

// FindResourceFiles locates symbol headers in resDir.
func FindResourceFiles(resDir string) (*ResourceFiles, error) {
	symbols := filepath.Join(resDir, symbolsHeader)
	info, err := os.Stat(symbols)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", resDir, ErrNotResourceDir)
	}

	descriptions, err := filepath.Glob(filepath.Join(resDir, descriptionDir, "*.h"))
	if err != nil {
		return nil, err
	}
	slices.SortFunc(descriptions, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return &ResourceFiles{Dir: resDir, Symbols: symbols, Descriptions: descriptions}, nil
}
