package blob

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekathra/pkg/platform/sentinel"
)

func TestMemory_PutGetList(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	info, err := store.Put(ctx, "receipts/b.pdf", strings.NewReader("pdf-b"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size)
	_, err = store.Put(ctx, "receipts/a.pdf", strings.NewReader("pdf-a"), "application/pdf")
	require.NoError(t, err)
	_, err = store.Put(ctx, "exports/x.csv", strings.NewReader("Name"), "text/csv")
	require.NoError(t, err)

	got, body, err := store.Get(ctx, "receipts/a.pdf")
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "pdf-a", string(data))
	assert.Equal(t, "application/pdf", got.ContentType)

	listed, err := store.List(ctx, "receipts/")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "receipts/a.pdf", listed[0].Key)
	assert.Equal(t, "receipts/b.pdf", listed[1].Key)
}

func TestMemory_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	_, err := store.Put(ctx, "k", strings.NewReader("one"), "")
	require.NoError(t, err)
	_, err = store.Put(ctx, "k", strings.NewReader("three"), "")
	require.NoError(t, err)

	info, body, err := store.Get(ctx, "k")
	require.NoError(t, err)
	body.Close()
	assert.Equal(t, int64(5), info.Size)
}

func TestMemory_GetMissing(t *testing.T) {
	_, _, err := NewMemory().Get(context.Background(), "missing")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemory().Put(ctx, "k", strings.NewReader("x"), "")
	require.ErrorIs(t, err, context.Canceled)
}
