package compile

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/unicode"

	"c4ddev/config"
	"c4ddev/rpkg"
	"c4ddev/state"
)

const cubeSource = "ResourcePackage\nPRIM_CUBE_LENGTH: 1001\n  us: Size\n  de: Größe\nPRIM_CUBE_SEGMENTS: 1002\n  us: Segments\n"

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		t.Fatal(err)
	}
	return name
}

func newBuilder(t *testing.T) (*builder, string) {
	t.Helper()
	resDir := filepath.Join(t.TempDir(), "res")
	if err := os.Mkdir(resDir, 0755); err != nil {
		t.Fatal(err)
	}
	return &builder{resDir: resDir, banner: rpkg.HeaderBanner("test"), log: zaptest.NewLogger(t)}, resDir
}

func exists(t *testing.T, name string) bool {
	t.Helper()
	_, err := os.Stat(name)
	return err == nil
}

func TestProcess_File(t *testing.T) {
	b, resDir := newBuilder(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "cube.rpkg"), []byte(cubeSource))

	if err := b.process(context.Background(), []string{src}); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	header, err := os.ReadFile(filepath.Join(resDir, "description", "cube.h"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(header), "// Automatically generated with c4ddev vtest\n#ifndef __cube_H_") {
		t.Errorf("unexpected header:\n%s", header)
	}
	de, err := os.ReadFile(filepath.Join(resDir, "strings_de", "description", "cube.str"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(de), `PRIM_CUBE_LENGTH "Gr\u00f6\u00dfe";`) {
		t.Errorf("unexpected de string table:\n%s", de)
	}
	if b.built != 1 {
		t.Errorf("built = %d, want 1", b.built)
	}
}

func TestProcess_Directory(t *testing.T) {
	b, resDir := newBuilder(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cube.rpkg"), []byte(cubeSource))
	writeFile(t, filepath.Join(dir, "nested", "Ocylinder.RPKG"), []byte("ResourcePackage\nCYL: 1\n"))
	writeFile(t, filepath.Join(dir, "symbols.rpkg"), []byte("ResourcePackage(c4d_symbols)\nIDS_A:\n  us: A\n"))
	writeFile(t, filepath.Join(dir, "readme.txt"), []byte("not a package"))

	if err := b.process(context.Background(), []string{dir}); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	for _, name := range []string{
		"description/cube.h",
		"description/Ocylinder.h",
		"c4d_symbols.h",
		"strings_us/c4d_strings.str",
	} {
		if !exists(t, filepath.Join(resDir, filepath.FromSlash(name))) {
			t.Errorf("%s was not written", name)
		}
	}
	if b.built != 3 {
		t.Errorf("built = %d, want 3", b.built)
	}
}

func TestProcess_Archive(t *testing.T) {
	b, resDir := newBuilder(t)
	name := filepath.Join(t.TempDir(), "sources.bin")
	out, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(out)
	for path, content := range map[string]string{
		"src/cube.rpkg": cubeSource,
		"src/notes.txt": "skip me",
	} {
		fw, err := w.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	out.Close()

	if err := b.process(context.Background(), []string{name}); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if !exists(t, filepath.Join(resDir, "description", "cube.h")) {
		t.Error("package from archive was not compiled")
	}
}

func TestProcess_ContinuesAfterFailure(t *testing.T) {
	b, resDir := newBuilder(t)
	dir := t.TempDir()
	dup := writeFile(t, filepath.Join(dir, "dup.rpkg"), []byte("ResourcePackage\nA: 1\nA: 2\n"))
	bad := writeFile(t, filepath.Join(dir, "bad.rpkg"), []byte("ResourcePackage\nA: 1\n  xx: nope\n"))
	good := writeFile(t, filepath.Join(dir, "good.rpkg"), []byte("ResourcePackage\nA: 1\n"))
	missing := filepath.Join(dir, "missing.rpkg")

	err := b.process(context.Background(), []string{dup, missing, bad, good})
	if err == nil {
		t.Fatal("expected combined error")
	}
	if n := len(multierr.Errors(err)); n != 3 {
		t.Errorf("got %d errors, want 3: %v", n, err)
	}
	var perr *rpkg.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("ParseError expected in %v", err)
	}
	if !exists(t, filepath.Join(resDir, "description", "good.h")) {
		t.Error("good package must be compiled")
	}
	if exists(t, filepath.Join(resDir, "description", "dup.h")) {
		t.Error("failed package must not produce output")
	}
}

func TestProcess_MissingResDir(t *testing.T) {
	b, _ := newBuilder(t)
	b.resDir = filepath.Join(t.TempDir(), "missing")
	src := writeFile(t, filepath.Join(t.TempDir(), "cube.rpkg"), []byte(cubeSource))

	err := b.process(context.Background(), []string{src})
	if !errors.Is(err, rpkg.ErrNoResDir) {
		t.Fatalf("process() error = %v, want ErrNoResDir", err)
	}
	if b.built != 0 {
		t.Error("nothing must be built")
	}
}

func TestProcess_Canceled(t *testing.T) {
	b, _ := newBuilder(t)
	src := writeFile(t, filepath.Join(t.TempDir(), "cube.rpkg"), []byte(cubeSource))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := b.process(ctx, []string{src}); !errors.Is(err, context.Canceled) {
		t.Errorf("process() error = %v, want context.Canceled", err)
	}
}

func TestProcess_Report(t *testing.T) {
	b, _ := newBuilder(t)
	rpt, err := (&config.ReporterConfig{Destination: filepath.Join(t.TempDir(), "report.zip")}).Prepare()
	if err != nil {
		t.Fatal(err)
	}
	b.rpt = rpt
	src := writeFile(t, filepath.Join(t.TempDir(), "cube.rpkg"), []byte(cubeSource))

	if err := b.process(context.Background(), []string{src}); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatal(err)
	}

	zr, err := zip.OpenReader(rpt.Name())
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"result/description/cube.h", "result/strings_de/description/cube.str"} {
		if !names[want] {
			t.Errorf("report misses %s, has %v", want, names)
		}
	}
	dumped := false
	for name := range names {
		if strings.HasPrefix(name, "packages/001-") && strings.HasSuffix(name, ".txt") {
			dumped = true
		}
	}
	if !dumped {
		t.Errorf("package dump missing from report: %v", names)
	}
}

func TestDecode(t *testing.T) {
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("ResourcePackage\nA: 1\n  de: Größe\n")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr bool
	}{
		{"plain", []byte("ResourcePackage\n"), "ResourcePackage\n", false},
		{"utf8 bom", []byte("\xef\xbb\xbfResourcePackage\n"), "ResourcePackage\n", false},
		{"utf16 bom", []byte(utf16), "ResourcePackage\nA: 1\n  de: Größe\n", false},
		{"latin1", []byte("de: Gr\xf6\xdfe"), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsArchiveFile(t *testing.T) {
	dir := t.TempDir()
	plain := writeFile(t, filepath.Join(dir, "cube.zip"), []byte("ResourcePackage\n"))
	if ok, err := isArchiveFile(plain); err != nil || ok {
		t.Errorf("isArchiveFile(plain) = %v, %v", ok, err)
	}
	empty := writeFile(t, filepath.Join(dir, "empty"), nil)
	if ok, err := isArchiveFile(empty); err != nil || ok {
		t.Errorf("isArchiveFile(empty) = %v, %v", ok, err)
	}
	if _, err := isArchiveFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFindSources_NaturalOrder(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"obj10.rpkg", "obj9.rpkg", "obj1.rpkg", "skip.h"} {
		writeFile(t, filepath.Join(dir, n), []byte("ResourcePackage\n"))
	}
	found, err := findSources(dir)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, f := range found {
		got = append(got, filepath.Base(f))
	}
	if strings.Join(got, ",") != "obj1.rpkg,obj9.rpkg,obj10.rpkg" {
		t.Errorf("findSources() = %v", got)
	}
}

func TestRun(t *testing.T) {
	newCommand := func() *cli.Command {
		return &cli.Command{
			Name: "rpkg",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "res", Aliases: []string{"r"}},
				&cli.BoolFlag{Name: "no-header"},
			},
			Action:         Run,
			ExitErrHandler: func(context.Context, *cli.Command, error) {},
		}
	}
	newContext := func(t *testing.T) context.Context {
		ctx := state.ContextWithEnv(context.Background())
		env := state.EnvFromContext(ctx)
		cfg, err := config.LoadConfiguration("")
		if err != nil {
			t.Fatal(err)
		}
		env.Cfg = cfg
		env.Log = zaptest.NewLogger(t)
		return ctx
	}

	t.Run("no input", func(t *testing.T) {
		if err := newCommand().Run(newContext(t), []string{"rpkg"}); !errors.Is(err, ErrNoInput) {
			t.Errorf("Run() error = %v, want ErrNoInput", err)
		}
	})

	t.Run("no header", func(t *testing.T) {
		resDir := t.TempDir()
		src := writeFile(t, filepath.Join(t.TempDir(), "cube.rpkg"), []byte(cubeSource))
		ctx := newContext(t)
		if err := newCommand().Run(ctx, []string{"rpkg", "-r", resDir, "--no-header", src}); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		header, err := os.ReadFile(filepath.Join(resDir, "description", "cube.h"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(header), "#ifndef __cube_H_") {
			t.Errorf("banner must be omitted:\n%s", header)
		}
		env := state.EnvFromContext(ctx)
		if env.ResDir != resDir || !env.NoHeader {
			t.Errorf("env = %q %v", env.ResDir, env.NoHeader)
		}
	})
}
