package parquetutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Sequence int64  `parquet:"name=sequence, type=INT64"`
	Asset    string `parquet:"name=asset, type=BYTE_ARRAY, convertedtype=UTF8"`
	Amount   string `parquet:"name=amount, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func TestWriteReadAll(t *testing.T) {
	records := []record{
		{Sequence: 1, Asset: "1", Amount: "100"},
		{Sequence: 2, Asset: "2", Amount: "340282366920938463463374607431768211455"},
		{Sequence: 3, Asset: "1", Amount: "0"},
	}

	file := NewEmptyBufferFile()
	require.NoError(t, WriteAll(file, records))
	require.NotEmpty(t, file.Bytes())

	actual, err := ReadAll[record](NewBufferFile(file.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, records, actual)
}

func TestWriteAllEmpty(t *testing.T) {
	file := NewEmptyBufferFile()
	require.NoError(t, WriteAll[record](file, nil))

	actual, err := ReadAll[record](NewBufferFile(file.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, actual)
}
