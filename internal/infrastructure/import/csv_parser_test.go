package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSVParser(t *testing.T) {
	t.Run("parses the header row", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("name,tax_id\nfoo,bar\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "tax_id"}, parser.Headers())
		assert.True(t, parser.HasHeader("name"))
		assert.False(t, parser.HasHeader("missing"))
	})

	t.Run("strips a UTF-8 BOM", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("\xEF\xBB\xBFname\nfoo\n"))
		require.NoError(t, err)
		assert.True(t, parser.HasHeader("name"))
	})

	t.Run("trims header whitespace", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("name , tax_id\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "tax_id"}, parser.Headers())
	})

	t.Run("rejects an empty file", func(t *testing.T) {
		_, err := NewCSVParser(strings.NewReader(""))
		require.ErrorIs(t, err, ErrEmptyFile)
	})
}

func TestReadAllRows(t *testing.T) {
	t.Run("reads rows keyed by header", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("name,count\nfoo,1\nbar,2\n"))
		require.NoError(t, err)

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, 2, rows[0].LineNumber)
		assert.Equal(t, "foo", rows[0].Get("name"))
		assert.Equal(t, "1", rows[0].Get("count"))
		assert.Equal(t, 3, rows[1].LineNumber)
		assert.Equal(t, "bar", rows[1].Get("name"))
	})

	t.Run("skips fully empty rows", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("name,count\nfoo,1\n,\nbar,2\n"))
		require.NoError(t, err)

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "bar", rows[1].Get("name"))
	})

	t.Run("short rows fill missing columns with empty values", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("name,count\nfoo\n"))
		require.NoError(t, err)

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "", rows[0].Get("count"))
	})

	t.Run("trims cell whitespace", func(t *testing.T) {
		parser, err := NewCSVParser(strings.NewReader("name\n  foo  \n"))
		require.NoError(t, err)

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "foo", rows[0].Get("name"))
	})
}
