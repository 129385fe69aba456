// Package files stores the original résumé files.
package files

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// AFSStore keeps résumé files under a base URL using github.com/viant/afs.
// The base may be a local directory or any scheme afs supports (mem://, gs://, ...).
type AFSStore struct {
	fs      afs.Service
	baseURL string
}

// NewAFSStore creates a store rooted at base. Local directories are made absolute
// so stored locations stay valid when the working directory changes.
func NewAFSStore(base string) (*AFSStore, error) {
	if base == "" {
		return nil, fmt.Errorf("empty file store location")
	}
	if url.Scheme(base, "") == "" {
		abs, err := filepath.Abs(base)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", base, err)
		}
		base = abs
	}
	return &AFSStore{fs: afs.New(), baseURL: strings.TrimRight(base, "/")}, nil
}

// Put writes data under name and returns its location.
func (s *AFSStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	location := url.Join(s.baseURL, filepath.Base(name))
	if err := s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", location, err)
	}
	return location, nil
}

// Get reads the file at location.
func (s *AFSStore) Get(ctx context.Context, location string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return data, nil
}

// Exists reports whether a file is present at location.
func (s *AFSStore) Exists(ctx context.Context, location string) (bool, error) {
	return s.fs.Exists(ctx, location)
}

// Delete removes the file at location. Missing files are not an error.
func (s *AFSStore) Delete(ctx context.Context, location string) error {
	ok, err := s.fs.Exists(ctx, location)
	if err != nil || !ok {
		return err
	}
	return s.fs.Delete(ctx, location)
}
