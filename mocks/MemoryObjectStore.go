package mocks

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// MemoryObjectStore is an in-memory object store that implements the s3
// list and delete calls and the manager download and upload calls
type MemoryObjectStore struct {
	mu      sync.Mutex
	buckets map[string]map[string][]byte

	// PageSize is the number of keys returned per list page, 1000 when 0
	PageSize int
	// FailDelete lists keys that DeleteObjects reports as failed
	FailDelete map[string]bool

	ListCalls   int
	DeleteCalls int
	Uploads     []string
}

// NewMemoryObjectStore creates an empty store
func NewMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{
		buckets:    make(map[string]map[string][]byte),
		FailDelete: make(map[string]bool),
	}
}

// CreateBucket creates an empty bucket if it does not exist
func (s *MemoryObjectStore) CreateBucket(bucket string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buckets[bucket]; !ok {
		s.buckets[bucket] = make(map[string][]byte)
	}
}

// Put stores an object
func (s *MemoryObjectStore) Put(bucket, key string, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buckets[bucket]; !ok {
		s.buckets[bucket] = make(map[string][]byte)
	}
	s.buckets[bucket][key] = append([]byte{}, body...)
}

// Get returns a stored object
func (s *MemoryObjectStore) Get(bucket, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	body, ok := s.buckets[bucket][key]
	return body, ok
}

// Keys returns the sorted keys of the bucket starting with prefix
func (s *MemoryObjectStore) Keys(bucket, prefix string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.keys(bucket, prefix)
}

func (s *MemoryObjectStore) keys(bucket, prefix string) []string {
	keys := []string{}
	for key := range s.buckets[bucket] {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// ListObjectsV2 lists the keys in pages of PageSize
func (s *MemoryObjectStore) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ListCalls++

	bucket := aws.ToString(params.Bucket)
	if _, ok := s.buckets[bucket]; !ok {
		return nil, &types.NoSuchBucket{Message: aws.String(bucket)}
	}

	pageSize := s.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	keys := s.keys(bucket, aws.ToString(params.Prefix))
	start := 0
	if params.ContinuationToken != nil {
		start = sort.SearchStrings(keys, *params.ContinuationToken)
		if start < len(keys) && keys[start] == *params.ContinuationToken {
			start++
		}
	}

	end := start + pageSize
	if end > len(keys) {
		end = len(keys)
	}

	output := &s3.ListObjectsV2Output{
		Name:   params.Bucket,
		Prefix: params.Prefix,
	}
	for _, key := range keys[start:end] {
		output.Contents = append(output.Contents, types.Object{
			Key:  aws.String(key),
			Size: int64(len(s.buckets[bucket][key])),
		})
	}
	output.KeyCount = int32(len(output.Contents))

	if end < len(keys) {
		output.IsTruncated = true
		output.NextContinuationToken = aws.String(keys[end-1])
	}

	return output, nil
}

// DeleteObjects removes the keys, reporting the ones in FailDelete as errors
func (s *MemoryObjectStore) DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls++

	bucket := aws.ToString(params.Bucket)
	output := &s3.DeleteObjectsOutput{}
	for _, object := range params.Delete.Objects {
		key := aws.ToString(object.Key)
		if s.FailDelete[key] {
			output.Errors = append(output.Errors, types.Error{
				Key:     aws.String(key),
				Code:    aws.String("AccessDenied"),
				Message: aws.String("Access Denied"),
			})
			continue
		}

		delete(s.buckets[bucket], key)
		output.Deleted = append(output.Deleted, types.DeletedObject{Key: aws.String(key)})
	}

	return output, nil
}

// Download writes the object body into w
func (s *MemoryObjectStore) Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*manager.Downloader)) (int64, error) {
	body, ok := s.Get(aws.ToString(input.Bucket), aws.ToString(input.Key))
	if !ok {
		return 0, &types.NoSuchKey{Message: aws.String(aws.ToString(input.Key))}
	}

	n, err := w.WriteAt(body, 0)
	return int64(n), err
}

// Upload stores the body of the input
func (s *MemoryObjectStore) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	body := []byte{}
	if input.Body != nil {
		var err error
		body, err = io.ReadAll(input.Body)
		if err != nil {
			return nil, err
		}
	}

	bucket := aws.ToString(input.Bucket)
	key := aws.ToString(input.Key)
	s.Put(bucket, key, body)

	s.mu.Lock()
	s.Uploads = append(s.Uploads, key)
	s.mu.Unlock()

	return &manager.UploadOutput{
		Location: fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key),
	}, nil
}
