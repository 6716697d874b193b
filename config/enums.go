package config

// Output format for exported resource symbols.
// ENUM(json, file, class)
type SymbolsFormat int

// Ext returns file extension conventionally used for the format.
func (f SymbolsFormat) Ext() string {
	switch f {
	case SymbolsFormatJson:
		return ".json"
	case SymbolsFormatFile, SymbolsFormatClass:
		return ".py"
	default:
		// this should never happen
		panic("unsupported symbols format requested")
	}
}
