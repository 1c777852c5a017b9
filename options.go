package domquery

import "log/slog"

// ParseOptions controls tolerant HTML parsing. The zero value is strict;
// use DefaultOptions for the tolerant defaults.
type ParseOptions struct {
	// Recover keeps parsing past structural defects, repairing them into
	// a best-effort tree the way a browser would.
	Recover bool

	// NoError suppresses error diagnostics. It only mutes logging; it
	// never changes the resulting tree.
	NoError bool

	// NoWarning suppresses warning diagnostics.
	NoWarning bool

	// NoBlanks elides whitespace-only text nodes from the tree. This
	// simplifies the DOM but can shift positional XPath predicates.
	NoBlanks bool

	// Logger receives parse diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultOptions favors maximal tolerance: recovery on, diagnostics on.
func DefaultOptions() ParseOptions {
	return ParseOptions{Recover: true}
}

// ScraperOptions is the tolerant, silent profile for scraping real-world
// HTML: recover everything, report nothing.
func ScraperOptions() ParseOptions {
	return ParseOptions{Recover: true, NoError: true, NoWarning: true}
}

// StrictOptions disables recovery and reports every diagnostic.
func StrictOptions() ParseOptions {
	return ParseOptions{}
}

// CompactOptions is ScraperOptions with whitespace-only text nodes
// removed.
func CompactOptions() ParseOptions {
	return ParseOptions{Recover: true, NoError: true, NoWarning: true, NoBlanks: true}
}

// XMLParseOptions controls strict XML parsing.
type XMLParseOptions struct {
	// NoBlanks elides whitespace-only text nodes.
	NoBlanks bool

	// NoDTD drops doctype declarations from the tree.
	NoDTD bool

	// NoEntities restricts entity references to the XML predefined five;
	// when false the HTML named entities are also accepted. External
	// entities are never loaded.
	NoEntities bool
}

// DefaultXMLOptions keeps doctypes and entity expansion off.
func DefaultXMLOptions() XMLParseOptions {
	return XMLParseOptions{NoDTD: true, NoEntities: true}
}
