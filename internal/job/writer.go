package job

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/josenarvaezp/curate/internal/dataset"
	"github.com/josenarvaezp/curate/internal/objectstore"
	"github.com/josenarvaezp/curate/internal/parquetio"
	"github.com/josenarvaezp/curate/internal/partition"
)

// SuccessMarker is written last to a destination once every part is uploaded
const SuccessMarker = "_SUCCESS"

// WriteResult describes the objects a write replaced and created
type WriteResult struct {
	Files    []string
	Records  int
	Replaced int
}

// partFileName returns the name of the nth part file of a write
func partFileName(n int, writeID uuid.UUID) string {
	return fmt.Sprintf("part-%05d-%s-c000.snappy.parquet", n, writeID.String())
}

// WriteParquet writes the dataset to the location in overwrite mode. The
// parts are encoded locally first, then every object under the location is
// deleted, the parts are uploaded and the success marker is written last.
// A dataset without columns produces only the success marker.
func WriteParquet(ctx context.Context, session *Session, ds *dataset.Dataset, location partition.Location) (*WriteResult, error) {
	tmpDir, err := os.MkdirTemp("", "curate-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	writeID := uuid.New()
	parts := []string{}
	if len(ds.Schema().Fields) > 0 {
		for i, chunk := range ds.Chunks(session.Config.MaxRecordsPerFile) {
			name := partFileName(i, writeID)
			if err := parquetio.WriteFile(filepath.Join(tmpDir, name), chunk); err != nil {
				return nil, err
			}
			parts = append(parts, name)
		}
	}

	replaced, err := objectstore.DeletePrefix(ctx, session.ObjectStoreAPI, location)
	if err != nil {
		return nil, fmt.Errorf("clearing %s: %w", location.String(), err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(session.concurrency())
	for _, name := range parts {
		name := name
		g.Go(func() error {
			return uploadFile(gctx, session, filepath.Join(tmpDir, name), location.Bucket, location.Prefix+name)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// the marker is empty
	_, err = session.UploaderAPI.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(location.Bucket),
		Key:    aws.String(location.Prefix + SuccessMarker),
		Body:   bytes.NewReader([]byte{}),
	})
	if err != nil {
		return nil, err
	}

	files := make([]string, len(parts))
	for i, name := range parts {
		files[i] = location.String() + name
	}

	return &WriteResult{
		Files:    files,
		Records:  ds.Len(),
		Replaced: replaced,
	}, nil
}

func uploadFile(ctx context.Context, session *Session, path, bucket, key string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = session.UploaderAPI.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", bucket, key, err)
	}

	return nil
}
