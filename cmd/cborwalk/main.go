// Command cborwalk prints a bounded-cursor walk of a CBOR document: one
// line per item, indented by nesting depth, with the item's CBOR type and
// a short value preview. It exists mainly as a smoke test for the cursor
// API - a generic, schema-free caller exercising EnterMap/EnterArray,
// GetNextWithTags, and PeekType the way a real schema-aware caller would
// exercise only the subset it needs.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	cbor "github.com/cbor-spiffy/spiffy/runtime"
)

// CLI defines the cborwalk command-line interface.
type CLI struct {
	File     string `arg:"" optional:"" help:"CBOR file to read, or - for stdin" default:"-"`
	Diag     bool   `short:"d" help:"Print RFC 8949 diagnostic notation instead of walking"`
	Validate bool   `short:"c" help:"Validate well-formedness (or canonical form, with --strict) before walking"`
	Strict   bool   `help:"Require canonical CBOR encoding; implies --validate"`
	MaxDepth int    `help:"Override the maximum nesting depth enforced while walking" default:"15"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cborwalk"),
		kong.Description("Walk a CBOR document with the spiffy decode cursor."),
	)
	ctx.FatalIfErrorf(run(&cli))
}

func run(cli *CLI) error {
	data, err := readInput(cli.File)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if cli.Strict {
		cli.Validate = true
	}

	if cli.Validate {
		if cli.Strict {
			if err := cbor.ValidateCanonicalDocument(data); err != nil {
				return fmt.Errorf("not canonical: %w", err)
			}
		} else {
			if err := cbor.ValidateDocument(data); err != nil {
				return fmt.Errorf("not well-formed: %w", err)
			}
		}
	}

	if cli.Diag {
		return printDiag(os.Stdout, data)
	}

	dc := cbor.NewDecodeContext(data)
	dc.SetMaxNesting(cli.MaxDepth)
	if err := walkItem(dc, os.Stdout, 0, ""); err != nil {
		return fmt.Errorf("walk: %w", err)
	}
	return dc.Finish()
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// printDiag renders every top-level item in data as RFC 8949 diagnostic
// notation, one per line, treating data as a CBOR sequence (RFC 8742).
func printDiag(w io.Writer, data []byte) error {
	for len(data) > 0 {
		text, rest, err := cbor.DiagBytes(data)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, text)
		data = rest
	}
	return nil
}

// walkItem prints the item at the cursor's current position, descending
// into it first if it is a map or array. prefix is printed before the
// type name and is used to mark map keys and values.
func walkItem(dc *cbor.DecodeContext, w io.Writer, depth int, prefix string) error {
	typ, err := dc.PeekType()
	if err != nil {
		return err
	}

	indent := indentFor(depth)
	switch typ {
	case cbor.MapItemType:
		fmt.Fprintf(w, "%s%smap\n", indent, prefix)
		dc.EnterMap()
		if err := walkChildren(dc, w, depth+1, true); err != nil {
			return err
		}
		dc.ExitMap()
	case cbor.ArrayItemType:
		fmt.Fprintf(w, "%s%sarray\n", indent, prefix)
		dc.EnterArray()
		if err := walkChildren(dc, w, depth+1, false); err != nil {
			return err
		}
		dc.ExitArray()
	default:
		it, err := dc.GetNextWithTags()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s%s%s %s\n", indent, prefix, it.Type, previewItem(it))
	}
	return dc.GetError()
}

// walkChildren walks every remaining item in the frame dc currently has
// entered. Inside a map, even positions are keys and odd positions are
// values; the distinction is purely positional since Item carries no
// label for sequentially-read entries.
func walkChildren(dc *cbor.DecodeContext, w io.Writer, depth int, inMap bool) error {
	for i := 0; ; i++ {
		_, err := dc.PeekType()
		if err == cbor.ErrNoMoreItems {
			return nil
		}
		if err != nil {
			return err
		}

		prefix := ""
		if inMap {
			if i%2 == 0 {
				prefix = "key: "
			} else {
				prefix = "value: "
			}
		}
		if err := walkItem(dc, w, depth, prefix); err != nil {
			return err
		}
	}
}

func indentFor(depth int) string {
	b := make([]byte, depth*2)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// previewItem renders a short, single-line value for scalar item types.
// Containers never reach here - walkItem handles them before calling
// GetNextWithTags.
func previewItem(it cbor.Item) string {
	switch it.Type {
	case cbor.IntItemType:
		return strconv.FormatInt(it.Int64, 10)
	case cbor.UintItemType:
		return strconv.FormatUint(it.Uint64, 10)
	case cbor.DoubleType, cbor.Float32ItemType:
		return strconv.FormatFloat(it.Float64, 'g', -1, 64)
	case cbor.BoolItemType:
		return strconv.FormatBool(it.SimpleValue != 0)
	case cbor.TextStringType:
		return strconv.Quote(it.Text)
	case cbor.ByteStringType:
		return fmt.Sprintf("h'%x'", it.Bytes)
	case cbor.NilItemType:
		return "null"
	case cbor.UndefinedType:
		return "undefined"
	case cbor.DateEpochType:
		return strconv.FormatInt(it.Int64, 10) + "s"
	case cbor.DateStringType, cbor.URIType, cbor.RegexType, cbor.MIMEType:
		return strconv.Quote(it.Text)
	case cbor.UUIDType, cbor.Base64Type, cbor.Base64URLType, cbor.PosBignumType, cbor.NegBignumType:
		return fmt.Sprintf("h'%x'", it.Bytes)
	case cbor.DecimalFractionType, cbor.BigfloatType:
		sign := ""
		if it.SimpleValue != 0 {
			sign = "-"
		}
		return fmt.Sprintf("%smantissa=0x%x exp=%d", sign, it.Bytes, it.Int64)
	default:
		return ""
	}
}
