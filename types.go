package pdxtext

import (
	"strings"

	"github.com/reoring/pdxtext/internal/textenc"
	"github.com/reoring/pdxtext/source"
)

// Encoding selects the byte to text decoding of scalars.
type Encoding = textenc.Encoding

const (
	EncodingUTF8        = textenc.UTF8        // Default.
	EncodingWindows1252 = textenc.Windows1252 // Single-byte western encoding of older titles.
)

// ParseEncoding maps an encoding name ("utf8", "windows1252", ...) to an
// Encoding. Unrecognized names select UTF-8.
func ParseEncoding(name string) Encoding { return textenc.Lookup(name) }

// TypeNarrowing controls which scalars are coerced to bool, number or date.
type TypeNarrowing int

const (
	NarrowAll      TypeNarrowing = iota // Coerce quoted and unquoted scalars (default).
	NarrowUnquoted                      // Coerce unquoted scalars only.
	NarrowNone                          // Never coerce; every scalar is a string.
)

// ParseTypeNarrowing maps "all", "unquoted" or "none" to a TypeNarrowing.
// Unrecognized names select NarrowAll.
func ParseTypeNarrowing(name string) TypeNarrowing {
	switch strings.ToLower(name) {
	case "unquoted":
		return NarrowUnquoted
	case "none":
		return NarrowNone
	}
	return NarrowAll
}

// DuplicateKeyMode controls how repeated keys are rendered as JSON.
type DuplicateKeyMode int

const (
	DuplicateGroup    DuplicateKeyMode = iota // One member per key holding an array of occurrences (default).
	DuplicatePreserve                         // One member per occurrence; the JSON may repeat keys.
	DuplicateTyped                            // Every container wrapped as {"type": ..., "val": ...}.
)

// ParseDuplicateKeyMode maps "group", "preserve", "typed" or
// "key-value-pairs" to a DuplicateKeyMode. Unrecognized names select
// DuplicateGroup.
func ParseDuplicateKeyMode(name string) DuplicateKeyMode {
	switch strings.ToLower(name) {
	case "preserve", "keys":
		return DuplicatePreserve
	case "typed", "key-value-pairs":
		return DuplicateTyped
	}
	return DuplicateGroup
}

// DateFormat controls how dates are rendered as JSON strings.
type DateFormat int

const (
	DateGame    DateFormat = iota // Text as written in the document, e.g. "1444.11.11" (default).
	DateRFC3339                   // UTC timestamp, e.g. "1444-11-11T00:00:00Z".
)

// ParseOpt bundles parsing options. The zero value parses UTF-8 with full
// type narrowing.
type ParseOpt struct {
	Encoding  Encoding
	Narrowing TypeNarrowing
	// MaxDepth limits container nesting; zero selects a default of 512 and a
	// negative value disables the limit.
	MaxDepth int
	// KeepHeader disables skipping of a binary prefix such as "EU4txt".
	KeepHeader bool
	// Source configures ParseReader's decompression.
	Source source.Options
}

// JSONOpt controls JSON rendering.
type JSONOpt struct {
	Pretty bool
	Mode   DuplicateKeyMode
	Dates  DateFormat
}
