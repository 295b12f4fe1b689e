package inventory_test

import (
	"context"
	"testing"

	"bucket-sync/core/inventory"
	"bucket-sync/core/storage"
	"bucket-sync/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemote(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "site", "www/").Return(mocks.Listing(
		storage.ObjectInfo{Key: "www/", Size: 0},
		storage.ObjectInfo{Key: "www/x.txt", ETag: "h1", Size: 10},
		storage.ObjectInfo{Key: "www/img/z.png", ETag: "h3", Size: 5},
	))

	entries, err := inventory.Remote(context.Background(), client, "site", "www/")
	require.NoError(t, err)

	assert.Len(t, entries, 2)
	assert.Equal(t, inventory.RemoteEntry{Key: "x.txt", ETag: "h1", Size: 10}, entries["x.txt"])
	assert.Equal(t, "h3", entries["img/z.png"].ETag)
	assert.Equal(t, []string{"img/z.png", "x.txt"}, inventory.SortedKeys(entries))
}

func TestRemote_ListingError(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "site", "").Return(mocks.Listing(
		storage.ObjectInfo{Key: "a.txt", ETag: "h1", Size: 1},
		storage.ObjectInfo{Err: storage.ErrConnectivity},
	))

	entries, err := inventory.Remote(context.Background(), client, "site", "")
	assert.Nil(t, entries)
	assert.ErrorIs(t, err, storage.ErrConnectivity)
}

func TestRemote_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "site", "").Return(mocks.Listing(
		storage.ObjectInfo{Key: "a.txt", ETag: "h1", Size: 1},
	))

	_, err := inventory.Remote(ctx, client, "site", "")
	assert.ErrorIs(t, err, context.Canceled)
}
