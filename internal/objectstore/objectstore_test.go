package objectstore_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/josenarvaezp/curate/internal/objectstore"
	"github.com/josenarvaezp/curate/internal/partition"
	"github.com/josenarvaezp/curate/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ListMatching_HappyPath(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMemoryObjectStore()
	store.PageSize = 2

	store.Put("raw", "year=2025/month=11/day=25/b.json", []byte(`{"a":2}`))
	store.Put("raw", "year=2025/month=11/day=25/a.json", []byte(`{"a":1}`))
	store.Put("raw", "year=2025/month=11/day=25/_SUCCESS", nil)
	store.Put("raw", "year=2024/month=01/day=01/part.json.gz", []byte("gz"))
	store.Put("raw", "year=2024/month=01/data.json", []byte(`{}`))
	store.Put("raw", "unpartitioned.json", []byte(`{}`))

	location, err := partition.ParseLocation(partition.SourcePath("s3", "raw"))
	require.Nil(t, err)

	objects, err := objectstore.ListMatching(ctx, store, location)
	require.Nil(t, err)

	assert.Equal(t, []objectstore.Object{
		{Bucket: "raw", Key: "year=2024/month=01/day=01/part.json.gz", Size: 2},
		{Bucket: "raw", Key: "year=2025/month=11/day=25/a.json", Size: 7},
		{Bucket: "raw", Key: "year=2025/month=11/day=25/b.json", Size: 7},
	}, objects)
	// five keys start with year= so three pages are needed
	assert.Equal(t, 3, store.ListCalls)
}

func Test_ListMatching_UnhappyPath(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMemoryObjectStore()

	location, err := partition.ParseLocation("s3://missing/year=*/month=*/day=*/")
	require.Nil(t, err)

	objects, err := objectstore.ListMatching(ctx, store, location)
	assert.Nil(t, objects)

	var noSuchBucket *types.NoSuchBucket
	assert.ErrorAs(t, err, &noSuchBucket)
}

func Test_DeletePrefix_HappyPath(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMemoryObjectStore()
	store.PageSize = 500

	for i := 0; i < 1200; i++ {
		store.Put("curated", fmt.Sprintf("year=25/month=11/day=25/part-%05d.parquet", i), []byte("x"))
	}
	store.Put("curated", "year=25/month=11/day=26/part-00000.parquet", []byte("x"))

	location, err := partition.ParseLocation("s3://curated/year=25/month=11/day=25/")
	require.Nil(t, err)

	deleted, err := objectstore.DeletePrefix(ctx, store, location)
	require.Nil(t, err)

	assert.Equal(t, 1200, deleted)
	assert.Equal(t, 2, store.DeleteCalls)
	assert.Empty(t, store.Keys("curated", "year=25/month=11/day=25/"))
	assert.Equal(t, []string{"year=25/month=11/day=26/part-00000.parquet"}, store.Keys("curated", ""))
}

func Test_DeletePrefix_PartialFailure(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMemoryObjectStore()

	store.Put("curated", "year=25/month=11/day=25/a.parquet", []byte("x"))
	store.Put("curated", "year=25/month=11/day=25/b.parquet", []byte("x"))
	store.Put("curated", "year=25/month=11/day=25/c.parquet", []byte("x"))
	store.FailDelete["year=25/month=11/day=25/a.parquet"] = true
	store.FailDelete["year=25/month=11/day=25/c.parquet"] = true

	location, err := partition.ParseLocation("s3://curated/year=25/month=11/day=25/")
	require.Nil(t, err)

	deleted, err := objectstore.DeletePrefix(ctx, store, location)
	assert.Equal(t, 1, deleted)
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
	assert.Contains(t, err.Error(), "deleting year=25/month=11/day=25/a.parquet: AccessDenied")
}

func Test_DeletePrefix_EmptyPrefix(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMemoryObjectStore()
	store.CreateBucket("curated")

	location, err := partition.ParseLocation("s3://curated/year=25/month=11/day=25/")
	require.Nil(t, err)

	deleted, err := objectstore.DeletePrefix(ctx, store, location)
	assert.Nil(t, err)
	assert.Equal(t, 0, deleted)
	assert.Equal(t, 0, store.DeleteCalls)
}
