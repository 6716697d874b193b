// Package archive walks files stored in zip archives.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// WalkFunc is called for every matching file. The archive argument is the
// path given to Walk. Returning an error stops the walk.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits regular files in archive whose extension equals ext (case
// insensitive, empty ext matches everything) in the order they are stored.
// An entry with absolute path or ".." component makes the whole archive
// suspicious and Walk fails before visiting anything.
func Walk(archive, ext string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	var matched []*zip.File
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: unsafe path", f.Name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if ext == "" || strings.EqualFold(path.Ext(f.Name), ext) {
			matched = append(matched, f)
		}
	}
	for _, f := range matched {
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile returns complete content of archived file.
func ReadFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func isSafePath(name string) bool {
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) || path.IsAbs(name) {
		return false
	}
	if len(name) > 1 && name[1] == ':' {
		return false
	}
	for part := range strings.FieldsFuncSeq(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return false
		}
	}
	return true
}
