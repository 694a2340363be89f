package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"trip_parser/internal/config"
)

// ZstdSuffix marks input and output files that are zstd compressed.
const ZstdSuffix = ".zst"

type zstdReadCloser struct {
	zr *zstd.Decoder
	f  io.Closer
}

func (z *zstdReadCloser) Read(p []byte) (int, error) { return z.zr.Read(p) }

func (z *zstdReadCloser) Close() error {
	z.zr.Close()
	return z.f.Close()
}

// OpenInput opens path for reading, decompressing it when it ends in
// ZstdSuffix. An empty path reads stdin.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	if !strings.HasSuffix(path, ZstdSuffix) {
		return f, nil
	}
	zr, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	return &zstdReadCloser{zr: zr, f: f}, nil
}

type zstdWriteCloser struct {
	zw *zstd.Encoder
	f  io.Closer
}

func (z *zstdWriteCloser) Write(p []byte) (int, error) { return z.zw.Write(p) }

func (z *zstdWriteCloser) Close() error {
	if err := z.zw.Close(); err != nil {
		z.f.Close()
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return z.f.Close()
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// CreateOutput creates path for writing, compressing it when it ends in
// ZstdSuffix. An empty path writes stdout.
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	if !strings.HasSuffix(path, ZstdSuffix) {
		return f, nil
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create zstd writer: %w", err)
	}
	return &zstdWriteCloser{zw: zw, f: f}, nil
}

// WriteOutputs encodes outs to w. JSON is written as one array; msgpack as
// a stream of one encoded Output per document.
func WriteOutputs(w io.Writer, outs []Output, format string, pretty bool) error {
	switch format {
	case "", config.FormatJSON:
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if outs == nil {
			outs = []Output{}
		}
		return enc.Encode(outs)
	case config.FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		for i := range outs {
			if err := enc.Encode(&outs[i]); err != nil {
				return fmt.Errorf("failed to encode %s: %w", outs[i].Name, err)
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported output format: %s", format)
}
