package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/familytree/pkg/errors"
	"github.com/matzehuels/familytree/pkg/family"
	fio "github.com/matzehuels/familytree/pkg/io"
)

// FileBackend stores the members as a JSON array in the interchange
// format, so the file can be exported and imported unchanged.
//
// The version lives in process memory only and restarts at 0, like a
// freshly loaded canvas.
type FileBackend struct {
	path string
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend returns a backend for path. Missing parent directories
// are created on the first save.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file.
func (b *FileBackend) Path() string { return b.path }

func (b *FileBackend) Load(ctx context.Context) ([]family.Member, int64, error) {
	members, err := fio.ImportJSON(b.path)
	if err != nil {
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			return []family.Member{}, 0, nil
		}
		return nil, 0, err
	}
	return members, 0, nil
}

// Save writes to a temporary file in the same directory and renames it
// over the target.
func (b *FileBackend) Save(ctx context.Context, members []family.Member, version int64) error {
	var buf bytes.Buffer
	if err := fio.WriteJSON(members, &buf); err != nil {
		return err
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("replace %s: %w", b.path, err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }
