// file: repository/document_store.go

package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go-bank-ledger/logger"

	"github.com/sirupsen/logrus"
)

var (
	// ErrDocumentNotFound means nothing has been stored yet.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrMalformedDocument wraps any failure to decode or rebuild stored state.
	ErrMalformedDocument = errors.New("malformed persisted document")
)

// IDocumentStore reads and overwrites a single whole document. There is no
// partial update: every Write replaces everything that was there.
type IDocumentStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// FileDocumentStore keeps a document in a flat file.
type FileDocumentStore struct {
	Path string
}

func NewFileDocumentStore(path string) *FileDocumentStore {
	return &FileDocumentStore{Path: path}
}

func (s *FileDocumentStore) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrDocumentNotFound
		}
		logger.Log.WithError(err).WithField("path", s.Path).Error("Failed to read document file")
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return data, nil
}

// Write truncates and rewrites the file in place. A crash halfway through
// leaves a truncated file behind, which the next load treats as malformed.
func (s *FileDocumentStore) Write(_ context.Context, data []byte) error {
	log := logger.Log.WithFields(logrus.Fields{
		"path":  s.Path,
		"bytes": len(data),
	})

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.WithError(err).Error("Failed to create document directory")
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		log.WithError(err).Error("Failed to write document file")
		return fmt.Errorf("write %s: %w", s.Path, err)
	}
	log.Debug("Document file written")
	return nil
}
