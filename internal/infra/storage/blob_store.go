package storage

import (
	"context"
	"net/url"
	"os"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

const blobContentType = "application/json"

// blobStore keeps one object per key in a gocloud bucket.
type blobStore struct {
	bucket    *blob.Bucket
	namespace string
}

// OpenBlobStore opens the bucket at bucketURL (file:///dir, mem://, or any
// registered gocloud scheme). Local directories are created on demand.
func OpenBlobStore(ctx context.Context, bucketURL, namespace string) (repository.KeyValueStore, error) {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parse bucket url %q", bucketURL)
	}
	if u.Scheme == "file" && u.Path != "" {
		if err := os.MkdirAll(u.Path, 0o700); err != nil {
			return nil, errors.Wrapf(err, "create bucket dir %s", u.Path)
		}
	}

	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %q", bucketURL)
	}

	return &blobStore{bucket: bucket, namespace: namespace}, nil
}

func (s *blobStore) Get(ctx context.Context, key string) (string, error) {
	data, err := s.bucket.ReadAll(ctx, s.objectKey(key))
	if gcerrors.Code(err) == gcerrors.NotFound {
		return "", repository.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "blob read %s", key)
	}

	return string(data), nil
}

func (s *blobStore) Set(ctx context.Context, key, value string) error {
	opts := &blob.WriterOptions{ContentType: blobContentType}
	if err := s.bucket.WriteAll(ctx, s.objectKey(key), []byte(value), opts); err != nil {
		return errors.Wrapf(err, "blob write %s", key)
	}

	return nil
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, s.objectKey(key))
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "blob delete %s", key)
	}

	return nil
}

func (s *blobStore) Close() error {
	return errors.WithStack(s.bucket.Close())
}

func (s *blobStore) objectKey(key string) string {
	return namespacedKey(s.namespace, key, "/") + ".json"
}
