// Package csvfile reads seed CSV files into column keyed records.
package csvfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"unicode/utf8"

	"github.com/Rana718/csvmigrate/internal/types"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// GzipMIMEType is the content type http.DetectContentType reports for
// gzip streams.
const GzipMIMEType = "application/x-gzip"

// sniffLen matches the number of bytes http.DetectContentType considers.
const sniffLen = 512

type Options struct {
	Delimiter rune
	// SkipRows drops this many data rows after the header.
	SkipRows int
}

func DefaultOptions() Options {
	return Options{Delimiter: ','}
}

func (o Options) Validate() error {
	if o.Delimiter == 0 || o.Delimiter == '\r' || o.Delimiter == '\n' || o.Delimiter == '"' ||
		o.Delimiter == utf8.RuneError || !utf8.ValidRune(o.Delimiter) {
		return fmt.Errorf("%w: %q", ErrInvalidDelimiter, o.Delimiter)
	}
	if o.SkipRows < 0 {
		return fmt.Errorf("skip rows cannot be negative: %d", o.SkipRows)
	}
	return nil
}

// Parse reads the CSV file at path. The first row is the header; every
// following row becomes one record keyed by the header columns. Gzip
// compressed files are detected from their content, not their extension.
func Parse(path string, opts Options) ([]types.Record, error) {
	var records []types.Record
	err := withContent(path, opts, func(src io.Reader) error {
		var err error
		records, err = Decode(src, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ReadHeader returns the column names of the CSV file at path without
// reading its data rows. An empty file has no columns.
func ReadHeader(path string, opts Options) ([]string, error) {
	var header []string
	err := withContent(path, opts, func(src io.Reader) error {
		reader := newCSVReader(src, opts)
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read csv header: %w", err)
		}
		header = append([]string(nil), row...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return header, nil
}

// withContent opens path, unwraps gzip when the content calls for it and
// hands the text stream to read. The file is closed before returning.
func withContent(path string, opts Options, read func(io.Reader) error) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileError(path, ErrFileNotFound, nil)
		}
		if errors.Is(err, fs.ErrPermission) {
			return fileError(path, ErrFileNotReadable, err)
		}
		return fileError(path, ErrOpen, err)
	}
	if info.IsDir() {
		return fileError(path, ErrOpen, errors.New("is a directory"))
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fileError(path, ErrFileNotReadable, err)
		}
		return fileError(path, ErrOpen, err)
	}
	defer file.Close()

	src, closeSrc, err := openContent(file)
	if err != nil {
		return fileError(path, ErrOpen, err)
	}
	defer closeSrc()

	if err := read(src); err != nil {
		return fileError(path, ErrParse, err)
	}
	return nil
}

// IsGzip reports whether the leading bytes of a file are a gzip stream.
func IsGzip(head []byte) bool {
	return http.DetectContentType(head) == GzipMIMEType
}

func openContent(r io.Reader) (io.Reader, func() error, error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, nil, err
	}

	if !IsGzip(head) {
		return br, func() error { return nil }, nil
	}

	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	return gz, gz.Close, nil
}

// Decode reads CSV text from r. Line endings may be \n, \r\n or a bare \r,
// and a leading byte order mark is dropped. Empty fields become nil, as do
// fields missing from rows shorter than the header.
func Decode(r io.Reader, opts Options) ([]types.Record, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	reader := newCSVReader(r, opts)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []types.Record{}, nil
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	columns := make([]string, len(header))
	copy(columns, header)

	records := []types.Record{}
	skipped := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if skipped < opts.SkipRows {
			skipped++
			continue
		}

		records = append(records, buildRecord(columns, row))
	}

	return records, nil
}

func newCSVReader(r io.Reader, opts Options) *csv.Reader {
	text := transform.NewReader(r, transform.Chain(unicode.BOMOverride(transform.Nop), &lineEndingNormalizer{}))

	reader := csv.NewReader(text)
	reader.Comma = opts.Delimiter
	reader.FieldsPerRecord = -1
	return reader
}

func buildRecord(columns, row []string) types.Record {
	values := make([]*string, len(columns))
	for i := range columns {
		if i >= len(row) || len(row[i]) == 0 {
			continue
		}
		v := row[i]
		values[i] = &v
	}
	return types.Record{Columns: columns, Values: values}
}

// lineEndingNormalizer rewrites bare \r and \r\n line breaks to \n.
// Bytes inside quoted fields pass through unchanged.
type lineEndingNormalizer struct {
	prevCR   bool
	inQuotes bool
}

func (t *lineEndingNormalizer) Reset() {
	t.prevCR = false
	t.inQuotes = false
}

func (t *lineEndingNormalizer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c == '\n' && t.prevCR {
			t.prevCR = false
			nSrc++
			continue
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if c == '"' {
			t.inQuotes = !t.inQuotes
		}
		t.prevCR = c == '\r' && !t.inQuotes
		if t.prevCR {
			dst[nDst] = '\n'
		} else {
			dst[nDst] = c
		}
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}
