package rpkg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoResDir is returned when resource directory does not exist.
var ErrNoResDir = errors.New("resource directory does not exist")

// CheckResDir makes sure resource directory is present.
func CheckResDir(resDir string) error {
	info, err := os.Stat(resDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", resDir, ErrNoResDir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", resDir, ErrNoResDir)
	}
	return nil
}

// HeaderPath returns location of package symbols header inside resDir.
func (p *Package) HeaderPath(resDir string) string {
	if p.IsSymbols() {
		return filepath.Join(resDir, SymbolsPackageName+".h")
	}
	return filepath.Join(resDir, "description", p.Name+".h")
}

// StringTablePath returns location of package string table for language
// inside resDir.
func (p *Package) StringTablePath(resDir string, lang Language) string {
	if p.IsSymbols() {
		return filepath.Join(resDir, lang.Dir(), "c4d_strings.str")
	}
	return filepath.Join(resDir, lang.Dir(), "description", p.Name+".str")
}

// Write renders package into resDir overwriting existing files and returns
// names of files written, header first. Files written before a failure are
// left in place.
func Write(p *Package, resDir, banner string) ([]string, error) {
	if err := CheckResDir(resDir); err != nil {
		return nil, err
	}

	var written []string
	put := func(name string, data []byte) error {
		if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", name, err)
		}
		if err := os.WriteFile(name, data, 0644); err != nil {
			return fmt.Errorf("unable to write %s: %w", name, err)
		}
		written = append(written, name)
		return nil
	}

	if err := put(p.HeaderPath(resDir), p.Header(banner)); err != nil {
		return written, err
	}
	for _, lang := range p.Languages() {
		if err := put(p.StringTablePath(resDir, lang), p.StringTable(lang)); err != nil {
			return written, err
		}
	}
	return written, nil
}
