package stations

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTable = `Station Name,CRS Code
Reading,RDG
London Paddington,PAD
,XXX
Twyford,TWY
Reading Central,RDG
`

func TestLoad(t *testing.T) {
	directory, err := Load(strings.NewReader(testTable))
	require.NoError(t, err)

	assert.Equal(t, 3, directory.Len())
	assert.Equal(t, []string{"PAD", "RDG", "TWY"}, directory.Codes())

	name, err := directory.Lookup("RDG")
	require.NoError(t, err)
	assert.Equal(t, "Reading Central", name)

	_, err = directory.Lookup("XXX")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadIsIdempotent(t *testing.T) {
	first, err := Load(strings.NewReader(testTable))
	require.NoError(t, err)
	second, err := Load(strings.NewReader(testTable))
	require.NoError(t, err)

	assert.Equal(t, first.names, second.names)
}

func TestLoadStripsByteOrderMark(t *testing.T) {
	directory, err := Load(strings.NewReader("\xef\xbb\xbfStation Name,CRS Code\nOxford,OXF\n"))
	require.NoError(t, err)

	name, err := directory.Lookup("OXF")
	require.NoError(t, err)
	assert.Equal(t, "Oxford", name)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "station_codes.csv")
	require.NoError(t, os.WriteFile(path, []byte(testTable), 0o644))

	directory, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, directory.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestLoadDefault(t *testing.T) {
	directory, err := LoadDefault()
	require.NoError(t, err)

	name, err := directory.Lookup("PAD")
	require.NoError(t, err)
	assert.Equal(t, "London Paddington", name)
}

func TestValidate(t *testing.T) {
	directory, err := Load(strings.NewReader(testTable))
	require.NoError(t, err)

	tests := []struct {
		code     string
		expected error
	}{
		{"RDG", nil},
		{"PAD", nil},
		{"", ErrInvalidFormat},
		{"RD", ErrInvalidFormat},
		{"RDGX", ErrInvalidFormat},
		{"OXF", ErrNotFound},
		{"XXX", ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			err := directory.Validate(tc.code)

			if tc.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expected)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	bundled, err := Open("")
	require.NoError(t, err)
	assert.Greater(t, bundled.Len(), 0)

	path := filepath.Join(t.TempDir(), "stations.csv")
	require.NoError(t, os.WriteFile(path, []byte(testTable), 0o644))

	fromFile, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 3, fromFile.Len())

	_, err = Open(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
