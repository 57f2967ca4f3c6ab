package objectstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hashicorp/go-multierror"

	"github.com/josenarvaezp/curate/internal/partition"
)

// maximum number of keys accepted by a single DeleteObjects call
const maxDeleteBatch = 1000

// Object represent a cloud object
type Object struct {
	Bucket string
	Key    string
	Size   int64
}

// ListMatching lists the data objects under the location, expanding the
// wildcards in its prefix. Objects are returned sorted by key.
func ListMatching(ctx context.Context, api ObjectStoreAPI, location partition.Location) ([]Object, error) {
	objects := []Object{}

	err := listPrefix(ctx, api, location.Bucket, location.ListPrefix(), func(object types.Object) {
		key := aws.ToString(object.Key)
		if location.Match(key) {
			objects = append(objects, Object{
				Bucket: location.Bucket,
				Key:    key,
				Size:   object.Size,
			})
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Key < objects[j].Key
	})

	return objects, nil
}

// DeletePrefix deletes every object under the location's prefix and returns
// the number of deleted objects
func DeletePrefix(ctx context.Context, api ObjectStoreAPI, location partition.Location) (int, error) {
	keys := []string{}
	err := listPrefix(ctx, api, location.Bucket, location.Prefix, func(object types.Object) {
		keys = append(keys, aws.ToString(object.Key))
	})
	if err != nil {
		return 0, err
	}

	var deleteErr *multierror.Error
	deleted := 0
	for start := 0; start < len(keys); start += maxDeleteBatch {
		end := start + maxDeleteBatch
		if end > len(keys) {
			end = len(keys)
		}

		identifiers := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			identifiers = append(identifiers, types.ObjectIdentifier{Key: aws.String(key)})
		}

		output, err := api.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(location.Bucket),
			Delete: &types.Delete{
				Objects: identifiers,
				Quiet:   true,
			},
		})
		if err != nil {
			return deleted, err
		}

		// quiet mode only reports the keys that could not be deleted
		for _, failure := range output.Errors {
			deleteErr = multierror.Append(deleteErr, fmt.Errorf(
				"deleting %s: %s %s",
				aws.ToString(failure.Key),
				aws.ToString(failure.Code),
				aws.ToString(failure.Message),
			))
		}
		deleted += len(identifiers) - len(output.Errors)
	}

	return deleted, deleteErr.ErrorOrNil()
}

// listPrefix calls fn for every object of the bucket starting with prefix
func listPrefix(ctx context.Context, api ObjectStoreAPI, bucket, prefix string, fn func(types.Object)) error {
	params := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if prefix != "" {
		params.Prefix = aws.String(prefix)
	}

	paginator := s3.NewListObjectsV2Paginator(api, params)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}

		for _, object := range page.Contents {
			fn(object)
		}
	}

	return nil
}
