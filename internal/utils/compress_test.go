package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressDecompress_RoundTrip(t *testing.T) {
	original := []byte(`{"manager_id":4921,"points":[10,2,6,12]}`)

	compressed, err := Compress(original)
	require.NoError(t, err)
	assert.NotEqual(t, original, compressed)

	restored, err := Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, restored)
}

func TestCompress_ShrinksRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte("fixture "), 1000)

	compressed, err := Compress(data)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(data))
}

func TestCompress_Empty(t *testing.T) {
	compressed, err := Compress(nil)
	require.NoError(t, err)

	restored, err := Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, restored)
}

func TestDecompress_Garbage(t *testing.T) {
	_, err := Decompress([]byte("not gzip data"))
	assert.Error(t, err)
}
