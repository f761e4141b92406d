// Package media stores uploaded book assets (cover images, PDFs) on
// the local filesystem under the configured media root. Book rows keep
// the path relative to that root.
package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	coverDir = "book_covers"
	pdfDir   = "book_pdfs"
)

type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	for _, d := range []string{coverDir, pdfDir} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("create media dir %s: %w", d, err)
		}
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

// SaveCover writes an uploaded cover image and returns its path
// relative to the media root.
func (s *Store) SaveCover(fh *multipart.FileHeader) (string, error) {
	return s.save(coverDir, fh)
}

// SavePDF writes an uploaded book PDF and returns its path relative to
// the media root.
func (s *Store) SavePDF(fh *multipart.FileHeader) (string, error) {
	return s.save(pdfDir, fh)
}

func (s *Store) save(dir string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	rel := filepath.Join(dir, uuid.NewString()+ext)

	dst, err := os.Create(filepath.Join(s.root, rel))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return rel, nil
}
