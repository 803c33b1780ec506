package pdxtext

import (
	"errors"
	"io"

	"github.com/reoring/pdxtext/internal/tape"
	"github.com/reoring/pdxtext/source"
)

// Document is a tokenized document. It owns the input buffer, which callers
// must not modify after Parse. A Document is read-only and safe for
// concurrent use.
type Document struct {
	tape   *tape.Tape
	enc    Encoding
	narrow TypeNarrowing
}

// Parse tokenizes data. Unless ParseOpt.KeepHeader is set, a binary prefix
// in front of the text body is skipped first (see source.SkipHeader).
func Parse(data []byte, opts ...ParseOpt) (*Document, error) {
	opt := lastOpt(opts)
	if !opt.KeepHeader {
		data = source.SkipHeader(data)
	}
	tp, err := tape.Parse(data, tape.Options{MaxDepth: opt.MaxDepth})
	if err != nil {
		return nil, fromSyntax(err)
	}
	return &Document{tape: tp, enc: opt.Encoding, narrow: opt.Narrowing}, nil
}

// ParseReader reads r, unpacks zip, gzip, zstd or lz4 input according to
// ParseOpt.Source and parses the result.
func ParseReader(r io.Reader, opts ...ParseOpt) (*Document, error) {
	opt := lastOpt(opts)
	data, err := source.Load(r, opt.Source)
	if err != nil {
		return nil, fromSource(err)
	}
	return Parse(data, opt)
}

// Extract parses data, hands the document to fn and returns its result. The
// document must not be retained past fn.
func Extract[T any](data []byte, fn func(*Document) (T, error), opts ...ParseOpt) (T, error) {
	doc, err := Parse(data, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return fn(doc)
}

// Encoding reports the encoding used to decode scalars.
func (d *Document) Encoding() Encoding { return d.enc }

// Narrowing reports the default type narrowing of the document.
func (d *Document) Narrowing() TypeNarrowing { return d.narrow }

// Root materializes the whole document with its default type narrowing.
func (d *Document) Root() Value { return d.Materialize(d.narrow) }

// Materialize builds the full value tree with type narrowing n. The result
// is always an object.
func (d *Document) Materialize(n TypeNarrowing) Value {
	r := reader{t: d.tape, enc: d.enc, narrow: n}
	return ObjectValue(r.object(tape.Root))
}

func lastOpt(opts []ParseOpt) ParseOpt {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}

func fromSource(err error) error {
	if errors.Is(err, source.ErrTooLarge) {
		return &Error{Code: CodeTruncated, Offset: -1, Cause: err}
	}
	return &Error{Code: CodeDecompress, Offset: -1, Cause: err}
}
