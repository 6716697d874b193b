// Package rpkg compiles resource package sources (.rpkg) into Cinema 4D
// symbol headers and string tables.
package rpkg

import (
	"cogentcore.org/core/base/ordmap"

	"c4ddev/utils/debug"
)

const (
	// SymbolsPackageName turns on automatic IDs for symbols declared
	// without value.
	SymbolsPackageName = "c4d_symbols"
	// AutoIDStart is the first automatically assigned symbol value.
	AutoIDStart = 10000
)

// Package is parsed resource package. Symbols and localizations keep
// declaration order.
type Package struct {
	Name          string
	Symbols       *ordmap.Map[string, int]
	Localizations *ordmap.Map[Language, *ordmap.Map[string, string]]
	AutoID        int
}

func NewPackage(name string) *Package {
	return &Package{
		Name:          name,
		Symbols:       ordmap.New[string, int](),
		Localizations: ordmap.New[Language, *ordmap.Map[string, string]](),
		AutoID:        AutoIDStart,
	}
}

// IsSymbols reports whether package describes global c4d_symbols resource.
func (p *Package) IsSymbols() bool {
	return p.Name == SymbolsPackageName
}

// Localize records text for symbol in language. It returns false when
// symbol already has text in this language.
func (p *Package) Localize(lang Language, symbol, text string) bool {
	table, ok := p.Localizations.ValueByKeyTry(lang)
	if !ok {
		table = ordmap.New[string, string]()
		p.Localizations.Add(lang, table)
	}
	if _, exists := table.ValueByKeyTry(symbol); exists {
		return false
	}
	table.Add(symbol, text)
	return true
}

// Languages returns languages present in package in order of appearance.
func (p *Package) Languages() []Language {
	return p.Localizations.Keys()
}

// String returns human readable dump of the package for debugging.
func (p *Package) String() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Package %s (auto id %d)", p.Name, p.AutoID)
	tw.Line(1, "Symbols: %d", p.Symbols.Len())
	for _, kv := range p.Symbols.Order {
		tw.Line(2, "%s = %d", kv.Key, kv.Value)
	}
	for _, loc := range p.Localizations.Order {
		tw.Line(1, "Strings %s (%s): %d", loc.Key, loc.Key.DisplayName(), loc.Value.Len())
		for _, kv := range loc.Value.Order {
			tw.Text(2, kv.Key, kv.Value)
		}
	}
	return tw.String()
}
