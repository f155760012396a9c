package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadRows(t *testing.T) {
	path := writeFile(t, "order,item\n1001,WC-1\n1002,WC-2\n")

	rows, err := ReadRows(path, true)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1001", "WC-1"}, rows[0])
	assert.Equal(t, []string{"1002", "WC-2"}, rows[1])
}

func TestReadRowsWithoutHeader(t *testing.T) {
	path := writeFile(t, "1001,WC-1\n")

	rows, err := ReadRows(path, false)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestReadRowsRaggedRows(t *testing.T) {
	path := writeFile(t, "1001,WC-1,extra\n1002\n")

	rows, err := ReadRows(path, false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 3)
	assert.Len(t, rows[1], 1)
}

func TestReadRowsHeaderOnly(t *testing.T) {
	path := writeFile(t, "order,item\n")

	rows, err := ReadRows(path, true)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadRowsMissingFile(t *testing.T) {
	rows, err := ReadRows(filepath.Join(t.TempDir(), "nope.csv"), true)
	assert.Error(t, err)
	assert.Nil(t, rows)
}
