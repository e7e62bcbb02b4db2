package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/avdeev-d/gallerykeep/internal/common"
)

// LocalSink writes blobs under a root directory on the local filesystem.
type LocalSink struct {
	root string
}

func NewLocalSink(root string) (*LocalSink, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("error creating blob directory: %w", err)
	}
	return &LocalSink{root: root}, nil
}

func (s *LocalSink) path(key string) string {
	// keys may carry a prefix directory, keep only the final element
	return filepath.Join(s.root, filepath.Base(key))
}

func (s *LocalSink) Save(ctx context.Context, key string, r io.Reader) error {
	f, err := os.Create(s.path(key))
	if err != nil {
		return fmt.Errorf("error creating blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("error writing blob: %w", err)
	}
	return nil
}

func (s *LocalSink) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error opening blob: %w", err)
	}
	return f, nil
}
