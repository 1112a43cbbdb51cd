package procede

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// compressedExt marks snapshot files written with zstd.
const compressedExt = ".zst"

func encodeJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	return data, errors.Wrap(err, "failed to encode json")
}

// WriteSnapshot writes v to w as json, zstd compressed if compress is set.
func WriteSnapshot(w io.Writer, v any, compress bool) error {
	if !compress {
		return errors.Wrap(json.NewEncoder(w).Encode(v), "failed to encode snapshot")
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return errors.Wrap(err, "failed to create zstd writer")
	}

	bw := bufio.NewWriterSize(enc, 256*1024)
	if err := json.NewEncoder(bw).Encode(v); err != nil {
		enc.Close()
		return errors.Wrap(err, "failed to encode snapshot")
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return errors.Wrap(err, "failed to flush snapshot")
	}
	return errors.Wrap(enc.Close(), "failed to close zstd writer")
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot into v.
func ReadSnapshot(r io.Reader, v any, compressed bool) error {
	if !compressed {
		return errors.Wrap(json.NewDecoder(r).Decode(v), "failed to decode snapshot")
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return errors.Wrap(err, "failed to create zstd reader")
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	return errors.Wrap(json.NewDecoder(br).Decode(v), "failed to decode snapshot")
}

// SaveJSON writes v to the given path as json. Paths ending in .zst are
// compressed.
func SaveJSON(fpath string, v any) error {
	if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", fpath)
	}
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", fpath)
	}
	defer f.Close()

	if err := WriteSnapshot(f, v, strings.HasSuffix(fpath, compressedExt)); err != nil {
		return err
	}
	return errors.Wrapf(f.Close(), "failed to close %s", fpath)
}

// LoadJSON reads a file written by SaveJSON into v.
func LoadJSON(fpath string, v any) error {
	f, err := os.Open(fpath)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", fpath)
	}
	defer f.Close()
	return ReadSnapshot(f, v, strings.HasSuffix(fpath, compressedExt))
}
