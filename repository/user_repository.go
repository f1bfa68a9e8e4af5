package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go-bank-ledger/logger"
	"go-bank-ledger/model"
)

// IUserRepository persists the credential store as one document keyed by
// username.
type IUserRepository interface {
	Load(ctx context.Context) (map[string]model.Credential, error)
	Save(ctx context.Context, credentials map[string]model.Credential) error
}

type credentialRecord struct {
	Password   string `json:"password"`
	CustomerID string `json:"customer_id"`
}

type UserRepository struct {
	store IDocumentStore
}

func NewUserRepository(store IDocumentStore) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Load(ctx context.Context) (map[string]model.Credential, error) {
	data, err := r.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	var doc map[string]credentialRecord
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	creds := make(map[string]model.Credential, len(doc))
	for username, rec := range doc {
		if username == "" || rec.Password == "" || rec.CustomerID == "" {
			return nil, fmt.Errorf("%w: incomplete credential for %q", ErrMalformedDocument, username)
		}
		creds[username] = model.Credential{
			Username:     username,
			PasswordHash: rec.Password,
			CustomerID:   rec.CustomerID,
		}
	}

	logger.Log.WithField("users", len(creds)).Info("Credential document loaded")
	return creds, nil
}

func (r *UserRepository) Save(ctx context.Context, credentials map[string]model.Credential) error {
	doc := make(map[string]credentialRecord, len(credentials))
	for username, c := range credentials {
		doc[username] = credentialRecord{Password: c.PasswordHash, CustomerID: c.CustomerID}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode credential document: %w", err)
	}
	return r.store.Write(ctx, data)
}
