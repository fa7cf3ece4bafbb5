package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"calapan-rental-backend/internal/domain"
)

// DocumentKind selects the subdirectory a rental document is stored in.
type DocumentKind string

const (
	DocumentGovernmentID   DocumentKind = "government_ids"
	DocumentPaymentReceipt DocumentKind = "receipts"
	DocumentVehicleImage   DocumentKind = "vehicles"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// DocumentStore persists uploaded rental documents.
type DocumentStore interface {
	// Save writes the document and returns its storage path. The returned
	// path is what gets recorded on the rental record.
	Save(kind DocumentKind, originalName string, size int64, r io.Reader) (string, error)
	Open(path string) (io.ReadCloser, error)
	Delete(path string) error
}

// LocalDocumentStore stores documents on the local filesystem under one
// subdirectory per document kind. Saved files get a UUID prefix so colliding
// upload names never overwrite each other.
type LocalDocumentStore struct {
	baseDir      string
	maxFileBytes int64
}

func NewLocalDocumentStore(baseDir string, maxFileSizeMB int64) (*LocalDocumentStore, error) {
	for _, kind := range []DocumentKind{DocumentGovernmentID, DocumentPaymentReceipt, DocumentVehicleImage} {
		dir := filepath.Join(baseDir, string(kind))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create document directory %s: %w", dir, err)
		}
	}
	return &LocalDocumentStore{
		baseDir:      baseDir,
		maxFileBytes: maxFileSizeMB * 1024 * 1024,
	}, nil
}

func (s *LocalDocumentStore) Save(kind DocumentKind, originalName string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", &domain.ValidationError{Field: "file", Reason: "only JPG, PNG, and PDF files are accepted"}
	}
	if size > s.maxFileBytes {
		return "", &domain.ValidationError{Field: "file", Reason: fmt.Sprintf("file exceeds the %dMB limit", s.maxFileBytes/(1024*1024))}
	}

	name := uuid.New().String() + "_" + sanitizeFilename(originalName)
	relPath := filepath.Join(string(kind), name)
	fullPath := filepath.Join(s.baseDir, relPath)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create document file: %w", err)
	}
	defer f.Close()

	// LimitReader guards against clients lying about Content-Length.
	written, err := io.Copy(f, io.LimitReader(r, s.maxFileBytes+1))
	if err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if written > s.maxFileBytes {
		os.Remove(fullPath)
		return "", &domain.ValidationError{Field: "file", Reason: fmt.Sprintf("file exceeds the %dMB limit", s.maxFileBytes/(1024*1024))}
	}
	return relPath, nil
}

func (s *LocalDocumentStore) Open(path string) (io.ReadCloser, error) {
	clean, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(clean)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *LocalDocumentStore) Delete(path string) error {
	clean, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// resolve rejects paths that would escape the base directory.
func (s *LocalDocumentStore) resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return "", &domain.ValidationError{Field: "path", Reason: "invalid document path"}
	}
	return filepath.Join(s.baseDir, clean), nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		base = "document"
	}
	return base
}
