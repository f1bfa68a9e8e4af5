// file: repository/postgres_document_store.go

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-bank-ledger/logger"

	"github.com/sirupsen/logrus"
)

// Document names used in the documents table.
const (
	BankDocumentName  = "bank"
	UsersDocumentName = "users"
)

// PostgresDocumentStore keeps a whole document as one JSONB row of the
// documents table created by the db migrations.
type PostgresDocumentStore struct {
	DB   *sql.DB
	Name string
}

func NewPostgresDocumentStore(db *sql.DB, name string) *PostgresDocumentStore {
	return &PostgresDocumentStore{DB: db, Name: name}
}

func (s *PostgresDocumentStore) Read(ctx context.Context) ([]byte, error) {
	log := logger.Log.WithField("document", s.Name)
	log.Debug("Executing query to read document")

	var body []byte
	query := `SELECT body FROM documents WHERE name = $1`
	err := s.DB.QueryRowContext(ctx, query, s.Name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		log.WithError(err).Error("Failed to execute read document query")
		return nil, fmt.Errorf("read document %s: %w", s.Name, err)
	}
	return body, nil
}

func (s *PostgresDocumentStore) Write(ctx context.Context, data []byte) error {
	log := logger.Log.WithFields(logrus.Fields{
		"document": s.Name,
		"bytes":    len(data),
	})
	log.Debug("Executing query to write document")

	// lib/pq sends []byte as bytea, so the body goes over the wire as text.
	query := `INSERT INTO documents (name, body, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`
	if _, err := s.DB.ExecContext(ctx, query, s.Name, string(data)); err != nil {
		log.WithError(err).Error("Failed to execute write document query")
		return fmt.Errorf("write document %s: %w", s.Name, err)
	}
	return nil
}
