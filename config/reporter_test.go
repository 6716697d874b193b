package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestReport(t *testing.T) (*Report, string) {
	t.Helper()
	name := filepath.Join(t.TempDir(), "report.zip")
	r, err := (&ReporterConfig{Destination: name}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return r, name
}

func readArchive(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_NilIsNoop(t *testing.T) {
	var r *Report
	r.Store("a", "/nowhere")
	r.StoreData("b", []byte("x"))
	if err := r.StoreCopy("c", "/nowhere"); err != nil {
		t.Errorf("StoreCopy() on nil report = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report = %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q", r.Name())
	}
}

func TestReport_Archive(t *testing.T) {
	r, name := newTestReport(t)

	src := t.TempDir()
	header := filepath.Join(src, "cube.h")
	if err := os.WriteFile(header, []byte("enum {};\n"), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(src, "strings_us")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "cube.str"), []byte("STRINGTABLE cube\n{\n}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("result/cube.h", header)
	r.StoreData("dump/cube.txt", []byte("Package cube"))
	if err := r.StoreCopy("res", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	// must be ignored, file is not there
	r.Store("missing", filepath.Join(src, "missing.h"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, name)
	if got := files["result/cube.h"]; got != "enum {};\n" {
		t.Errorf("result/cube.h = %q", got)
	}
	if got := files["dump/cube.txt"]; got != "Package cube" {
		t.Errorf("dump/cube.txt = %q", got)
	}
	if got := files["res/strings_us/cube.str"]; !strings.HasPrefix(got, "STRINGTABLE cube") {
		t.Errorf("res/strings_us/cube.str = %q", got)
	}
	if _, ok := files["missing"]; ok {
		t.Error("missing file should not be archived")
	}
	manifest := files["MANIFEST"]
	for _, want := range []string{"result/cube.h", "dump/cube.txt", "res", "missing"} {
		if !strings.Contains(manifest, want) {
			t.Errorf("MANIFEST does not mention %q:\n%s", want, manifest)
		}
	}
}

func TestReport_SnapshotsRemoved(t *testing.T) {
	r, _ := newTestReport(t)

	src := filepath.Join(t.TempDir(), "c4d_symbols.h")
	if err := os.WriteFile(src, []byte("enum {};\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("symbols", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	snapshot := r.entries["symbols"].actual
	if _, err := os.Stat(snapshot); err != nil {
		t.Fatalf("snapshot should exist before Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(snapshot); !os.IsNotExist(err) {
		t.Errorf("snapshot %s should be removed after Close", snapshot)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("original file must stay: %v", err)
	}
}

func TestReport_StoreCopyVersionsNames(t *testing.T) {
	r, _ := newTestReport(t)
	defer r.Close()

	src := filepath.Join(t.TempDir(), "a.rpkg")
	if err := os.WriteFile(src, []byte("ResourcePackage\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("src", src); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("src", src); err != nil {
		t.Fatal(err)
	}
	if len(r.entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(r.entries))
	}
}

func TestReport_StoreConflictPanics(t *testing.T) {
	r, _ := newTestReport(t)
	defer r.Close()

	r.Store("x", "/a")
	r.Store("x", "/a") // same path is fine
	defer func() {
		if recover() == nil {
			t.Error("expected panic for conflicting entry")
		}
	}()
	r.Store("x", "/b")
}
