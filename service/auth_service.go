package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-bank-ledger/config"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrTokenRevoked = errors.New("token has been revoked")

// PasswordHasher turns a password into the digest kept in the credential
// store and checks a password against it.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// SHA256Hasher is the unsalted hex SHA-256 digest that existing credential
// documents use.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(password, hash string) bool {
	digest, _ := h.Hash(password)
	return digest == hash
}

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewPasswordHasher picks the hasher named in configuration.
func NewPasswordHasher(name string) (PasswordHasher, error) {
	switch name {
	case config.HasherSHA256, "":
		return SHA256Hasher{}, nil
	case config.HasherBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	}
	return nil, fmt.Errorf("unknown password hasher %q", name)
}

// AuthService hashes passwords and issues the session tokens handed out at
// login. Logged-out tokens are remembered until they would have expired.
type AuthService struct {
	hasher PasswordHasher
	secret []byte
	ttl    time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewAuthService(hasher PasswordHasher, secret string, ttl time.Duration) *AuthService {
	if hasher == nil {
		hasher = SHA256Hasher{}
	}
	return &AuthService{
		hasher:  hasher,
		secret:  []byte(secret),
		ttl:     ttl,
		revoked: make(map[string]time.Time),
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	return s.hasher.Hash(password)
}

// CheckPasswordHash verifies against the scheme the stored hash was written
// with. The configured hasher only decides how new passwords are hashed.
func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	return verifierFor(hash, s.hasher).Verify(password, hash)
}

func verifierFor(hash string, fallback PasswordHasher) PasswordHasher {
	switch {
	case isBcryptHash(hash):
		return BcryptHasher{}
	case isSHA256Digest(hash):
		return SHA256Hasher{}
	}
	return fallback
}

func isBcryptHash(hash string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}

func isSHA256Digest(hash string) bool {
	if len(hash) != hex.EncodedLen(sha256.Size) {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}

// GenerateJWT signs a session token for the given login.
func (s *AuthService) GenerateJWT(username, customerID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &model.AppClaims{
		Username:   username,
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("username", username).Error("Failed to sign JWT")
		return "", time.Time{}, fmt.Errorf("failed to sign token string: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates signature, expiry and revocation.
func (s *AuthService) ParseToken(tokenString string) (*model.AppClaims, error) {
	claims := &model.AppClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	s.mu.Lock()
	_, revoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke invalidates a token until its expiry.
func (s *AuthService) Revoke(claims *model.AppClaims) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, id)
		}
	}

	exp := now.Add(s.ttl)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	s.revoked[claims.ID] = exp
	logger.Log.WithField("username", claims.Username).Info("Session revoked")
}
