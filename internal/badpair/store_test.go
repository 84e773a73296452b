package badpair

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -v --run TestFileStoreMissingFile
func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "bad_pairs.json"))

	pairs, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

// go test -v --run TestFileStoreRoundTrip
func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad_pairs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[["DAI","XYZ"]]`), 0o644))

	ctx := context.Background()
	store := NewFileStore(path)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Pair{{A: "DAI", B: "XYZ"}}, loaded)

	// Existing entries survive even if the caller omits them.
	require.NoError(t, store.Save(ctx, []Pair{{A: "XYZ", B: "DAI"}, {A: "DAI", B: "CRV"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[["DAI","XYZ"],["DAI","CRV"]]`, string(data))
}

// go test -v --run TestFileStoreCorrupt
func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad_pairs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

// go test -v --run TestMemoryStore
func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(Pair{A: "DAI", B: "XYZ"})

	require.NoError(t, store.Save(ctx, []Pair{{A: "DAI", B: "CRV"}}))

	pairs, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Pair{{A: "DAI", B: "XYZ"}, {A: "DAI", B: "CRV"}}, pairs)
}
