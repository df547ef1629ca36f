package fileio

import (
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r *Reader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			return lines
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
}

func TestOpen_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.tsv")
	require.NoError(t, os.WriteFile(path, []byte("a\tb\r\nc\td\ne"), 0644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"a\tb", "c\td", "e"}, readAll(t, r))
	assert.Equal(t, 3, r.Line())
}

func TestOpen_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.vcf.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("##header\nline1\nline2\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"##header", "line1", "line2"}, readAll(t, r))
}

func TestOpen_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.ReadLine()
	assert.Equal(t, io.EOF, err)
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.tsv")
	assert.Error(t, err)
}

func TestParseError(t *testing.T) {
	r := NewReader("clinvar.tsv", strings.NewReader("x\ny\n"))
	_, _ = r.ReadLine()
	_, _ = r.ReadLine()
	err := r.Errorf("expected %d columns", 5)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, "clinvar.tsv: parse error at line 2: expected 5 columns", err.Error())
}

func TestColumns(t *testing.T) {
	c := NewColumns([]string{"#Uploaded_variation", "Location", "Feature"})
	assert.Equal(t, 0, c["Uploaded_variation"])
	assert.NoError(t, c.Require("Location", "Feature"))
	assert.EqualError(t, c.Require("Feature", "Codons"), `missing "Codons" column`)

	fields := []string{"1-1-A-G", "1:1"}
	assert.Equal(t, "1:1", c.Field(fields, "Location"))
	assert.Equal(t, "", c.Field(fields, "Feature"))
	assert.Equal(t, "", c.Field(fields, "Codons"))
}
