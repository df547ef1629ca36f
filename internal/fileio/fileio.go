// Package fileio opens plain, gzip and BGZF reference files and reports
// malformed lines with file and line context.
package fileio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/biogo/hts/bgzf"
)

// Reader reads lines from a possibly compressed file.
type Reader struct {
	Path string

	reader *bufio.Reader
	file   *os.File
	dec    io.Closer // gzip or bgzf decoder
	line   int
}

// Open opens path, transparently decompressing gzip and BGZF input.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	r := &Reader{Path: path, file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek %s: %w", path, err)
	}

	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		if ok, err := bgzf.HasEOF(file); err == nil && ok {
			bz, err := bgzf.NewReader(file, runtime.NumCPU())
			if err != nil {
				file.Close()
				return nil, fmt.Errorf("create bgzf reader for %s: %w", path, err)
			}
			r.dec = bz
			r.reader = bufio.NewReaderSize(bz, 1<<16)
			return r, nil
		}
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader for %s: %w", path, err)
		}
		r.dec = gz
		r.reader = bufio.NewReaderSize(gz, 1<<16)
		return r, nil
	}

	r.reader = bufio.NewReaderSize(file, 1<<16)
	return r, nil
}

// NewReader wraps an already open stream. name is used in error messages.
func NewReader(name string, rd io.Reader) *Reader {
	return &Reader{Path: name, reader: bufio.NewReader(rd)}
}

// ReadLine returns the next line without its terminator.
// It returns io.EOF when the input is exhausted.
func (r *Reader) ReadLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			r.line++
			return strings.TrimRight(line, "\r\n"), nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
		return "", fmt.Errorf("read %s: %w", r.Path, err)
	}
	r.line++
	return strings.TrimRight(line, "\r\n"), nil
}

// Read implements io.Reader over the decompressed stream.
func (r *Reader) Read(p []byte) (int, error) {
	return r.reader.Read(p)
}

// Line returns the number of the line most recently read.
func (r *Reader) Line() int {
	return r.line
}

// Errorf builds a ParseError for the current line.
func (r *Reader) Errorf(format string, args ...any) error {
	return &ParseError{Path: r.Path, Line: r.line, Message: fmt.Sprintf(format, args...)}
}

// Close closes the decoder and the underlying file.
func (r *Reader) Close() error {
	if r.dec != nil {
		r.dec.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ParseError represents a malformed input line.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error at line %d: %s", e.Path, e.Line, e.Message)
}

// Columns maps header names to field indices.
type Columns map[string]int

// NewColumns indexes a header row. A leading '#' on the first name is dropped.
func NewColumns(header []string) Columns {
	c := make(Columns, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimLeft(name, "#")
		}
		c[strings.TrimSpace(name)] = i
	}
	return c
}

// Require returns an error naming the first missing column.
func (c Columns) Require(names ...string) error {
	for _, name := range names {
		if _, ok := c[name]; !ok {
			return fmt.Errorf("missing %q column", name)
		}
	}
	return nil
}

// Field returns the named field of a split row, or "" if absent.
func (c Columns) Field(fields []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(fields) {
		return ""
	}
	return fields[i]
}
