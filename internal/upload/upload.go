// Package upload persists user-submitted images and hands back URLs the
// content services store alongside questions and answers.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type File struct {
	Name   string
	Reader io.Reader
}

// Uploader stores a batch of files and returns one URL per file, in order.
// An error from Upload is fatal to the surrounding create/update.
type Uploader interface {
	Upload(ctx context.Context, files []File) ([]string, error)
}

// Local stores uploads on the local filesystem under a single directory.
type Local struct {
	dir     string
	baseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Local{dir: dir, baseURL: baseURL}, nil
}

func (l *Local) Upload(ctx context.Context, files []File) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := uuid.NewString() + filepath.Ext(f.Name)
		dst, err := os.Create(filepath.Join(l.dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to create upload file: %w", err)
		}

		if _, err := io.Copy(dst, f.Reader); err != nil {
			dst.Close()
			os.Remove(dst.Name())
			return nil, fmt.Errorf("failed to write upload file: %w", err)
		}
		if err := dst.Close(); err != nil {
			return nil, err
		}

		urls = append(urls, l.baseURL+"/"+name)
	}
	return urls, nil
}
