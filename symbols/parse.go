// Package symbols reads resource symbol headers (c4d_symbols.h and
// description headers) and exports collected symbols for scripting.
package symbols

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"cogentcore.org/core/base/ordmap"
)

// Masked is a symbol shadowed by a later declaration with different value.
type Masked struct {
	Name  string
	Value int // value before redeclaration
}

// Table is result of parsing enumerations of a single header.
type Table struct {
	Symbols *ordmap.Map[string, int]
	Masked  []Masked
}

var (
	blockComment = regexp.MustCompile(`/\*.*?\*/`)
	enumKeyword  = regexp.MustCompile(`\benum\b`)
)

// ParseFile parses enumerations in named header file.
func ParseFile(name string) (*Table, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	t, err := ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

// ParseString extracts symbols from every "enum { ... }" block of text. This
// is not a C parser: comments are cut without regard to string literals,
// nested braces are not supported and names starting with underscore are
// counted but not returned.
func ParseString(text string) (*Table, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i], _, _ = strings.Cut(line, "//")
	}
	text = strings.Join(blockComment.Split(strings.Join(lines, " "), -1), " ")

	t := &Table{Symbols: ordmap.New[string, int]()}
	for i, segment := range enumKeyword.Split(text, -1) {
		if i == 0 {
			continue
		}
		_, body, found := strings.Cut(segment, "{")
		if !found {
			return nil, fmt.Errorf("enum #%d: missing opening brace", i)
		}
		body, _, _ = strings.Cut(body, "}")
		if err := t.addEnum(body); err != nil {
			return nil, fmt.Errorf("enum #%d: %w", i, err)
		}
	}
	return t, nil
}

func (t *Table) addEnum(body string) error {
	last := -1
	for item := range strings.SplitSeq(body, ",") {
		name, literal, explicit := strings.Cut(item, "=")
		value := last + 1
		if explicit {
			v, err := strconv.Atoi(strings.TrimSpace(literal))
			if err != nil {
				return fmt.Errorf("bad value for %s: %w", strings.TrimSpace(name), err)
			}
			value = v
		}

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if old, ok := t.Symbols.ValueByKeyTry(name); ok && old != value {
			t.Masked = append(t.Masked, Masked{Name: name, Value: old})
		}
		last = value
		if !strings.HasPrefix(name, "_") {
			t.Symbols.Add(name, value)
		}
	}
	return nil
}
