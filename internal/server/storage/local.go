package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ikhlashousing/propertycms/internal/filex"
)

// LocalStorage writes files to <root>/<folder>/<uuid>-<name>.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o770); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{root: abs}, nil
}

// Root is the directory served under PublicPrefix.
func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if !validFolder(folder) {
		return "", fmt.Errorf("invalid folder %q", folder)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir, err := filex.EnsureSubdDir(s.root, folder)
	if err != nil {
		return "", err
	}

	name := objectName(filename)
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close upload: %w", err)
	}

	return PublicPrefix + path.Join(folder, name), nil
}

func (s *LocalStorage) Delete(ctx context.Context, publicPath string) error {
	rel, ok := strings.CutPrefix(publicPath, PublicPrefix)
	if !ok || rel == "" {
		return ErrForeignPath
	}

	full, err := filex.SafeJoin(s.root, rel)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
