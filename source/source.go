// Package source prepares raw save file bytes for tokenization: it detects
// and unpacks compressed containers and skips opaque binary headers.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format identifies the container format of an input.
type Format int

const (
	FormatPlain Format = iota
	FormatZip
	FormatGzip
	FormatZstd
	FormatLZ4
)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	}
	return "plain"
}

// DefaultEntry is the zip member preferred when Options.Entry is empty.
const DefaultEntry = "gamestate"

// Options controls decoding.
type Options struct {
	// Entry names the zip member to read. Empty selects DefaultEntry, else
	// the first member.
	Entry string
	// MaxBytes caps the decoded size; zero means no limit.
	MaxBytes int64
}

var (
	// ErrTooLarge is returned when decoded data exceeds Options.MaxBytes.
	ErrTooLarge = errors.New("source: decoded data exceeds size limit")
	// ErrNoEntry is returned when a zip archive holds no usable member.
	ErrNoEntry = errors.New("source: zip entry not found")
)

var (
	magicZip  = []byte("PK\x03\x04")
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect reports the container format of data from its magic bytes.
func Detect(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicZip):
		return FormatZip
	case bytes.HasPrefix(data, magicGzip):
		return FormatGzip
	case bytes.HasPrefix(data, magicZstd):
		return FormatZstd
	case bytes.HasPrefix(data, magicLZ4):
		return FormatLZ4
	}
	return FormatPlain
}

// Load reads r fully and decodes it.
func Load(r io.Reader, opt Options) ([]byte, error) {
	data, err := readAll(r, opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	return Decode(data, opt)
}

// Decode unpacks data according to its detected format. Plain input is
// returned as is.
func Decode(data []byte, opt Options) ([]byte, error) {
	switch f := Detect(data); f {
	case FormatZip:
		return decodeZip(data, opt)
	case FormatGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("source: gzip: %w", err)
		}
		defer zr.Close()
		return readAll(zr, opt.MaxBytes)
	case FormatZstd:
		return decodeZstd(data, opt)
	case FormatLZ4:
		return readAll(lz4.NewReader(bytes.NewReader(data)), opt.MaxBytes)
	}
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

func decodeZip(data []byte, opt Options) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("source: zip: %w", err)
	}
	f := pickEntry(zr.File, opt.Entry)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoEntry, opt.Entry)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("source: zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()
	return readAll(rc, opt.MaxBytes)
}

func pickEntry(files []*zip.File, name string) *zip.File {
	want := name
	if want == "" {
		want = DefaultEntry
	}
	var first *zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.Name == want || path.Base(f.Name) == want {
			return f
		}
		if first == nil {
			first = f
		}
	}
	if name != "" {
		return nil
	}
	return first
}

// zstdDecoderPool pools zstd decoders. A decoder is reset to nil before it
// goes back so it holds no reference to the last input.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// decodeZstd decodes the whole frame at once when there is no cap. With a
// cap it streams, so that oversized output is never fully materialized.
func decodeZstd(data []byte, opt Options) ([]byte, error) {
	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer func() {
		_ = decoder.Reset(nil)
		zstdDecoderPool.Put(decoder)
	}()

	if opt.MaxBytes <= 0 {
		out, err := decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("source: zstd: %w", err)
		}
		return out, nil
	}
	if err := decoder.Reset(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("source: zstd: %w", err)
	}
	out, err := readAll(decoder, opt.MaxBytes)
	if err != nil && !errors.Is(err, ErrTooLarge) {
		return nil, fmt.Errorf("source: zstd: %w", err)
	}
	return out, err
}

func readAll(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > max {
		return nil, ErrTooLarge
	}
	return data, nil
}
