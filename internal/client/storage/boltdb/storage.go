package boltdb

import (
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var (
	bucketAuth = []byte("auth")
	tokenKey   = []byte("token")
)

// ErrTokenNotFound is returned when no token has been saved.
var ErrTokenNotFound = errors.New("token not found")

// TokenStore persists the session token between client runs.
type TokenStore struct {
	db *bbolt.DB
}

// Open opens (creating when needed) the bolt file at path.
func Open(path string) (*TokenStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAuth)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create auth bucket: %w", err)
	}

	return &TokenStore{db: db}, nil
}

func (s *TokenStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveToken replaces the stored token.
func (s *TokenStore) SaveToken(token string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}
		if err := bucket.Put(tokenKey, []byte(token)); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		return nil
	})
}

// GetToken returns the stored token or ErrTokenNotFound.
func (s *TokenStore) GetToken() (string, error) {
	var token string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}
		data := bucket.Get(tokenKey)
		if len(data) == 0 {
			return ErrTokenNotFound
		}
		// data is only valid inside the transaction.
		token = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// DeleteToken removes the stored token. Deleting a missing token is not an error.
func (s *TokenStore) DeleteToken() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}
		if err := bucket.Delete(tokenKey); err != nil {
			return fmt.Errorf("failed to delete token: %w", err)
		}
		return nil
	})
}
