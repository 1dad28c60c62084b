package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"licensee-matcher/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrNotFound is returned when a named dataset does not exist.
var ErrNotFound = errors.New("dataset not found")

// Store opens, writes and lists datasets by name.
type Store interface {
	// Open returns a reader over the named dataset.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Put writes size bytes from r as the named dataset, replacing it.
	Put(ctx context.Context, name string, r io.Reader, size int64) error
	// List returns the sorted names of all datasets under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// LocalStore keeps datasets as files below a root directory.
type LocalStore struct {
	root string
}

// NewLocalStore creates a store rooted at dir.
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{root: dir}
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/" + name)))
}

// Open implements Store.
func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return f, err
}

// Put implements Store.
func (s *LocalStore) Put(_ context.Context, name string, r io.Reader, _ int64) error {
	p := s.path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List implements Store. A missing directory lists nothing.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// ObjectStore keeps datasets as objects in one bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
}

// NewObjectStore creates a store over bucket.
func NewObjectStore(client storage.Client, bucket string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket}
}

// Open implements Store. Objects are fetched lazily, so a missing object may
// only surface as ErrNotFound on the first read.
func (s *ObjectStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(name, err)
	}
	return &objectReader{ReadCloser: obj, name: name, store: s}, nil
}

// Put implements Store.
func (s *ObjectStore) Put(ctx context.Context, name string, r io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", s.bucket, name, err)
	}
	return nil
}

// List implements Store.
func (s *ObjectStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s/%s: %w", s.bucket, prefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		names = append(names, obj.Key)
	}
	sort.Strings(names)
	return names, nil
}

func (s *ObjectStore) wrap(name string, err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("%s/%s: %w", s.bucket, name, ErrNotFound)
	}
	return fmt.Errorf("get %s/%s: %w", s.bucket, name, err)
}

type objectReader struct {
	io.ReadCloser
	name  string
	store *ObjectStore
}

func (r *objectReader) Read(p []byte) (int, error) {
	n, err := r.ReadCloser.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		err = r.store.wrap(r.name, err)
	}
	return n, err
}
