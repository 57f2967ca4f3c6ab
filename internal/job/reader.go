package job

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"

	"github.com/josenarvaezp/curate/internal/dataset"
	"github.com/josenarvaezp/curate/internal/objectstore"
	"github.com/josenarvaezp/curate/internal/partition"
)

var ErrNoSourceObjects = errors.New("path does not match any object")

// ReadJSON reads every JSON object under the location into a single dataset.
// Objects are downloaded concurrently and their records are kept in key order.
// It returns the dataset and the number of objects read.
func ReadJSON(ctx context.Context, session *Session, location partition.Location) (*dataset.Dataset, int, error) {
	objects, err := objectstore.ListMatching(ctx, session.ObjectStoreAPI, location)
	if err != nil {
		return nil, 0, err
	}
	if len(objects) == 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrNoSourceObjects, location.String())
	}

	results := make([][]dataset.Record, len(objects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(session.concurrency())
	for i, object := range objects {
		i, object := i, object
		g.Go(func() error {
			records, err := readObject(gctx, session.DownloaderAPI, object)
			if err != nil {
				return fmt.Errorf("reading s3://%s/%s: %w", object.Bucket, object.Key, err)
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	total := 0
	for _, records := range results {
		total += len(records)
	}
	all := make([]dataset.Record, 0, total)
	for _, records := range results {
		all = append(all, records...)
	}

	return dataset.New(all), len(objects), nil
}

// readObject downloads an object and decodes its JSON lines. Objects with a
// .gz suffix are decompressed first.
func readObject(ctx context.Context, api objectstore.ManagerDownloaderAPI, object objectstore.Object) ([]dataset.Record, error) {
	buf := manager.NewWriteAtBuffer(make([]byte, 0, object.Size))
	_, err := api.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(object.Bucket),
		Key:    aws.String(object.Key),
	})
	if err != nil {
		return nil, err
	}

	var r io.Reader = bytes.NewReader(buf.Bytes())
	if strings.HasSuffix(object.Key, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}

	return dataset.ReadJSON(r)
}
