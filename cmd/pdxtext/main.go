package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/reoring/pdxtext"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "json":
		jsonCmd(os.Args[2:])
	case "yaml":
		yamlCmd(os.Args[2:])
	case "at":
		atCmd(os.Args[2:])
	case "fmt":
		fmtCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "pdxtext CLI\n\nUsage:\n  pdxtext json [-pretty] [-mode group|preserve|typed] [-dates game|rfc3339] [file]\n  pdxtext yaml [file]\n  pdxtext at -path /a/b[,/c] [-pretty] [file]\n  pdxtext fmt [-o out.txt] [file]\n\nCommon flags:\n  -encoding utf8|windows1252  -narrow all|unquoted|none  -keep-header  -entry name  -max-bytes n  -v\n\nInput is read from file or stdin; zip, gzip, zstd and lz4 input is unpacked first.")
}

// inputFlags are shared by every subcommand.
type inputFlags struct {
	encoding   string
	narrow     string
	keepHeader bool
	entry      string
	maxBytes   int64
	verbose    bool
}

func (in *inputFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&in.encoding, "encoding", "utf8", "scalar encoding: utf8 or windows1252")
	fs.StringVar(&in.narrow, "narrow", "all", "type narrowing: all, unquoted or none")
	fs.BoolVar(&in.keepHeader, "keep-header", false, "do not skip a binary prefix such as EU4txt")
	fs.StringVar(&in.entry, "entry", "", "zip entry to read (default gamestate, else the first entry)")
	fs.Int64Var(&in.maxBytes, "max-bytes", 0, "reject inputs that unpack to more bytes (0 = unlimited)")
	fs.BoolVar(&in.verbose, "v", false, "enable verbose logs")
}

func (in *inputFlags) logf(format string, a ...any) {
	if in.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", a...)
	}
}

// load parses the file named by the first positional argument, or stdin.
func (in *inputFlags) load(fs *flag.FlagSet) *pdxtext.Document {
	var r io.Reader = os.Stdin
	name := "<stdin>"
	if fs.NArg() > 0 {
		name = fs.Arg(0)
		f, err := os.Open(name)
		if err != nil {
			fatalf("open input: %v", err)
		}
		defer f.Close()
		r = f
	}
	opt := pdxtext.ParseOpt{
		Encoding:   pdxtext.ParseEncoding(in.encoding),
		Narrowing:  pdxtext.ParseTypeNarrowing(in.narrow),
		KeepHeader: in.keepHeader,
	}
	opt.Source.Entry = in.entry
	opt.Source.MaxBytes = in.maxBytes
	in.logf("%s: input=%s encoding=%s narrow=%s", fs.Name(), name, opt.Encoding, in.narrow)

	doc, err := pdxtext.ParseReader(r, opt)
	if err != nil {
		fatalf("%s", pdxtext.ErrorChain(err))
	}
	return doc
}

func jsonCmd(args []string) {
	fs := flag.NewFlagSet("json", flag.ExitOnError)
	var in inputFlags
	var pretty bool
	var mode, dates string
	in.register(fs)
	fs.BoolVar(&pretty, "pretty", false, "indent the output")
	fs.StringVar(&mode, "mode", "group", "duplicate keys: group, preserve or typed")
	fs.StringVar(&dates, "dates", "game", "date rendering: game or rfc3339")
	_ = fs.Parse(args)

	doc := in.load(fs)
	opt := pdxtext.JSONOpt{Pretty: pretty, Mode: pdxtext.ParseDuplicateKeyMode(mode)}
	if strings.EqualFold(dates, "rfc3339") {
		opt.Dates = pdxtext.DateRFC3339
	}
	out, err := doc.JSON(opt)
	if err != nil {
		fatalf("render json: %v", err)
	}
	writeOut(out)
}

func yamlCmd(args []string) {
	fs := flag.NewFlagSet("yaml", flag.ExitOnError)
	var in inputFlags
	in.register(fs)
	_ = fs.Parse(args)

	out, err := in.load(fs).YAML()
	if err != nil {
		fatalf("render yaml: %v", err)
	}
	os.Stdout.Write(out)
}

func atCmd(args []string) {
	fs := flag.NewFlagSet("at", flag.ExitOnError)
	var in inputFlags
	var paths string
	var pretty bool
	in.register(fs)
	fs.StringVar(&paths, "path", "", "comma-separated paths such as /countries/ENG")
	fs.BoolVar(&pretty, "pretty", false, "indent the output")
	_ = fs.Parse(args)
	if paths == "" {
		fs.Usage()
		os.Exit(2)
	}

	doc := in.load(fs)
	missing := 0
	for _, p := range splitCSV(paths) {
		v, ok := doc.At(p)
		if !ok {
			in.logf("at: %s: no match", p)
			missing++
			continue
		}
		out, err := v.MarshalJSON()
		if err != nil {
			fatalf("render %s: %v", p, err)
		}
		if pretty {
			var buf bytes.Buffer
			if err := json.Indent(&buf, out, "", "  "); err != nil {
				fatalf("indent %s: %v", p, err)
			}
			out = buf.Bytes()
		}
		writeOut(out)
	}
	if missing > 0 {
		os.Exit(1)
	}
}

func fmtCmd(args []string) {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	var in inputFlags
	var out string
	in.register(fs)
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	_ = fs.Parse(args)

	doc := in.load(fs)
	var sink io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			fatalf("create output: %v", err)
		}
		defer f.Close()
		sink = f
	}
	w := pdxtext.NewWriter(sink, pdxtext.WriterOpt{Encoding: doc.Encoding()})
	if err := pdxtext.WriteValue(w, doc.Root()); err != nil {
		fatalf("%s", pdxtext.ErrorChain(err))
	}
	if _, err := w.Finish(); err != nil {
		fatalf("%s", pdxtext.ErrorChain(err))
	}
	if out == "" {
		fmt.Println()
	}
	in.logf("fmt: wrote %s", out)
}

func writeOut(b []byte) {
	os.Stdout.Write(b)
	fmt.Println()
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
