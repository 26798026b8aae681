package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSeedFile(t *testing.T) {
	fixed := uuid.MustParse("5b0c6f43-2a53-4a3b-9c54-1f0a8a3c2d10")
	path := filepath.Join(t.TempDir(), "cards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cards:
  - id: 5b0c6f43-2a53-4a3b-9c54-1f0a8a3c2d10
    group: Spanish
    front: hola
    back: hello
  - group: Spanish
    front: gato
    back: cat
`), 0o600))

	cards, err := readSeedFile(path)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.Equal(t, fixed, cards[0].ID)
	assert.Equal(t, "Spanish", cards[0].GroupName)
	assert.Equal(t, "hola", cards[0].Front)
	assert.Equal(t, "hello", cards[0].Back)
	assert.NotEqual(t, uuid.Nil, cards[1].ID)
	assert.Equal(t, "gato", cards[1].Front)
}

func TestReadSeedFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cards: [\n"), 0o600))

	_, err := readSeedFile(path)
	assert.Error(t, err)
}
