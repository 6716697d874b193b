package symbols

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"cogentcore.org/core/base/ordmap"
	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"

	"c4ddev/config"
	"c4ddev/misc"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Collection is the union of symbols from one or more resource directories.
// Global and description symbols are kept apart, in each group later
// definition wins.
type Collection struct {
	Symbols      *ordmap.Map[string, int]
	Descriptions *ordmap.Map[string, int]
}

// Collect parses symbol headers from every resource directory, reporting
// masked and conflicting symbols as warnings.
func Collect(dirs []string, log *zap.Logger) (*Collection, error) {
	c := &Collection{
		Symbols:      ordmap.New[string, int](),
		Descriptions: ordmap.New[string, int](),
	}
	symbolsOrigin := make(map[string]string)
	descriptionsOrigin := make(map[string]string)

	for _, dir := range dirs {
		files, err := FindResourceFiles(dir)
		if err != nil {
			return nil, err
		}
		if err := merge(files.Symbols, c.Symbols, symbolsOrigin, log); err != nil {
			return nil, err
		}
		for _, name := range files.Descriptions {
			if err := merge(name, c.Descriptions, descriptionsOrigin, log); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func merge(name string, dest *ordmap.Map[string, int], origin map[string]string, log *zap.Logger) error {
	t, err := ParseFile(name)
	if err != nil {
		return err
	}
	for _, m := range t.Masked {
		log.Warn("Symbol masked", zap.String("file", relPath(name)), zap.String("symbol", m.Name), zap.Int("value", m.Value))
	}
	for _, kv := range t.Symbols.Order {
		if prev, ok := dest.ValueByKeyTry(kv.Key); ok && prev != kv.Value {
			log.Warn("Symbol masks same symbol from another file",
				zap.String("file", relPath(name)), zap.String("symbol", kv.Key), zap.Int("value", kv.Value),
				zap.String("masked_file", relPath(origin[kv.Key])), zap.Int("masked_value", prev))
		}
		dest.Add(kv.Key, kv.Value)
		origin[kv.Key] = name
	}
	return nil
}

func relPath(name string) string {
	if rel, err := filepath.Rel(".", name); err == nil {
		return rel
	}
	return name
}

// Export writes collected symbols to w in requested format.
func Export(w io.Writer, format config.SymbolsFormat, c *Collection) error {
	switch format {
	case config.SymbolsFormatJson:
		return exportJSON(w, c)
	case config.SymbolsFormatFile:
		return exportPython(w, "file.py.tmpl", c)
	case config.SymbolsFormatClass:
		return exportPython(w, "class.py.tmpl", c)
	}
	return fmt.Errorf("unable to export symbols as %s: %w", format, config.ErrInvalidSymbolsFormat)
}

// exportJSON writes single object, description symbols override global ones
// with the same name.
func exportJSON(w io.Writer, c *Collection) error {
	all := ordmap.New[string, int]()
	all.Copy(c.Symbols)
	all.Copy(c.Descriptions)

	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i, kv := range all.Order {
		if i > 0 {
			buf.WriteString(", ")
		}
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteString(": ")
		buf.WriteString(strconv.Itoa(kv.Value))
	}
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

type pythonValues struct {
	Version string
	Symbols string
}

func exportPython(w io.Writer, name string, c *Collection) error {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).ParseFS(templates, "templates/"+name)
	if err != nil {
		return fmt.Errorf("unable to parse template %s: %w", name, err)
	}
	values := pythonValues{
		Version: misc.GetVersion(),
		Symbols: pythonAssignments(c),
	}
	return tmpl.Execute(w, values)
}

// pythonAssignments formats both groups sorted by name, private symbols are
// skipped.
func pythonAssignments(c *Collection) string {
	var lines []string
	for _, group := range []*ordmap.Map[string, int]{c.Symbols, c.Descriptions} {
		kvs := slices.Clone(group.Order)
		slices.SortFunc(kvs, func(a, b ordmap.KeyValue[string, int]) int {
			return strings.Compare(a.Key, b.Key)
		})
		for _, kv := range kvs {
			if strings.HasPrefix(kv.Key, "_") {
				continue
			}
			lines = append(lines, kv.Key+" = "+strconv.Itoa(kv.Value))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "pass")
	}
	return strings.Join(lines, "\n")
}
