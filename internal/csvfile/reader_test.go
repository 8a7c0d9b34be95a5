package csvfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rana718/csvmigrate/internal/types"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeGzipFile(t *testing.T, name, content string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func values(t *testing.T, r types.Record) []interface{} {
	t.Helper()
	return r.Args()
}

func TestParse_RecordsFollowHeader(t *testing.T) {
	path := writeFile(t, "users.csv", "id,name,email\n1,alice,alice@example.com\n2,bob,\n")

	records, err := Parse(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 2)

	for _, r := range records {
		assert.Equal(t, []string{"id", "name", "email"}, r.Columns)
	}
	assert.Equal(t, []interface{}{"1", "alice", "alice@example.com"}, values(t, records[0]))
	assert.Equal(t, []interface{}{"2", "bob", nil}, values(t, records[1]))
}

func TestParse_EmptyFieldBecomesNull(t *testing.T) {
	path := writeFile(t, "t.csv", "a,b,c\n,x,\n")

	records, err := Parse(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 1)

	a, ok := records[0].Get("a")
	assert.True(t, ok)
	assert.Nil(t, a)

	b, ok := records[0].Get("b")
	require.True(t, ok)
	require.NotNil(t, b)
	assert.Equal(t, "x", *b)

	_, ok = records[0].Get("missing")
	assert.False(t, ok)
}

func TestParse_ShortRowPadsWithNull(t *testing.T) {
	path := writeFile(t, "t.csv", "a,b,c\n1,2\n")

	records, err := Parse(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []interface{}{"1", "2", nil}, values(t, records[0]))
}

func TestParse_LongRowIsTruncatedToHeader(t *testing.T) {
	path := writeFile(t, "t.csv", "a,b\n1,2,3\n")

	records, err := Parse(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []interface{}{"1", "2"}, values(t, records[0]))
}

func TestParse_LineEndings(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "lf", content: "a,b\n1,2\n3,4\n"},
		{name: "crlf", content: "a,b\r\n1,2\r\n3,4\r\n"},
		{name: "bare cr", content: "a,b\r1,2\r3,4\r"},
		{name: "mixed", content: "a,b\r\n1,2\r3,4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "t.csv", tt.content)

			records, err := Parse(path, DefaultOptions())
			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.Equal(t, []interface{}{"1", "2"}, values(t, records[0]))
			assert.Equal(t, []interface{}{"3", "4"}, values(t, records[1]))
		})
	}
}

func TestParse_CustomDelimiter(t *testing.T) {
	path := writeFile(t, "t.csv", "a;b\n1;hello, world\n")

	records, err := Parse(path, Options{Delimiter: ';'})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []interface{}{"1", "hello, world"}, values(t, records[0]))
}

func TestParse_QuotedFields(t *testing.T) {
	path := writeFile(t, "t.csv", "a,b\n\"x,y\",\"line1\nline2\"\n")

	records, err := Parse(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []interface{}{"x,y", "line1\nline2"}, values(t, records[0]))
}

func TestDecode_BareCRInsideQuotesIsKept(t *testing.T) {
	records, err := Decode(strings.NewReader("id,note\r1,\"x\ry\"\r2,\"a\"\"b\"\r"), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []interface{}{"1", "x\ry"}, values(t, records[0]))
	assert.Equal(t, []interface{}{"2", `a"b`}, values(t, records[1]))
}

func TestDecode_BlankLinesAreSkipped(t *testing.T) {
	records, err := Decode(strings.NewReader("id,name\n1,a\n\n2,b\n"), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []interface{}{"1", "a"}, values(t, records[0]))
	assert.Equal(t, []interface{}{"2", "b"}, values(t, records[1]))
}

func TestParse_GzipDetectedByContent(t *testing.T) {
	path := writeGzipFile(t, "users.csv", "id,name\n1,alice\n2,bob\n")

	records, err := Parse(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []interface{}{"2", "bob"}, values(t, records[1]))
}

func TestParse_PlainTextWithGzExtension(t *testing.T) {
	path := writeFile(t, "users.csv.gz", "id,name\n1,alice\n")

	records, err := Parse(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestParse_StripsByteOrderMark(t *testing.T) {
	path := writeFile(t, "t.csv", "\xEF\xBB\xBFid,name\n1,alice\n")

	records, err := Parse(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"id", "name"}, records[0].Columns)
}

func TestParse_HeaderOnlyAndEmpty(t *testing.T) {
	records, err := Parse(writeFile(t, "h.csv", "a,b,c\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = Parse(writeFile(t, "e.csv", ""), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParse_SkipRows(t *testing.T) {
	path := writeFile(t, "t.csv", "a\n1\n2\n3\n")

	records, err := Parse(path, Options{Delimiter: ',', SkipRows: 2})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []interface{}{"3"}, values(t, records[0]))
}

func TestParse_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := Parse(path, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, path, fileErr.Path)
	assert.Contains(t, err.Error(), path)
}

func TestParse_FileNotReadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	path := writeFile(t, "locked.csv", "a\n1\n")
	require.NoError(t, os.Chmod(path, 0000))

	_, err := Parse(path, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotReadable))
}

func TestParse_DirectoryIsOpenError(t *testing.T) {
	_, err := Parse(t.TempDir(), DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOpen))
}

func TestParse_CorruptGzipIsOpenError(t *testing.T) {
	path := writeFile(t, "t.csv", "\x1f\x8b\x08")

	_, err := Parse(path, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOpen))
}

func TestParse_BareQuoteIsParseError(t *testing.T) {
	path := writeFile(t, "t.csv", "a,b\n1,x\"y\n")

	_, err := Parse(path, DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestParse_IsDeterministic(t *testing.T) {
	path := writeFile(t, "t.csv", "a,b\n1,2\n3,\n")

	first, err := Parse(path, DefaultOptions())
	require.NoError(t, err)
	second, err := Parse(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOptions_Validate(t *testing.T) {
	for _, d := range []rune{0, '\n', '\r', '"', 0xFFFD} {
		err := Options{Delimiter: d}.Validate()
		assert.True(t, errors.Is(err, ErrInvalidDelimiter), "delimiter %q", d)
	}
	assert.NoError(t, Options{Delimiter: '\t'}.Validate())
	assert.Error(t, Options{Delimiter: ',', SkipRows: -1}.Validate())
}

func TestDecode_LargeInputCrossesTransformBuffer(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("id,payload\r\n")
	for i := 0; i < 2000; i++ {
		sb.WriteString("1,")
		sb.WriteString(strings.Repeat("x", 20))
		sb.WriteString("\r\n")
	}

	records, err := Decode(strings.NewReader(sb.String()), DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, records, 2000)
}

func TestIsGzip(t *testing.T) {
	assert.True(t, IsGzip([]byte{0x1f, 0x8b, 0x08, 0x00}))
	assert.False(t, IsGzip([]byte("id,name\n")))
}

func TestReadHeader(t *testing.T) {
	header, err := ReadHeader(writeGzipFile(t, "t.csv", "id,name\n1,alice\n"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, header)

	header, err = ReadHeader(writeFile(t, "e.csv", ""), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, header)

	_, err = ReadHeader(filepath.Join(t.TempDir(), "missing.csv"), DefaultOptions())
	assert.True(t, errors.Is(err, ErrFileNotFound))
}
