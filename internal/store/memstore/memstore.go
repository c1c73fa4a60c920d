// Package memstore is a map-backed KV for tests and throwaway sessions.
package memstore

import (
	"bytes"

	"github.com/idilsaglam/orders/internal/store"
)

type Store struct {
	data map[string][]byte

	// SetErr, when non-nil, is returned by every Set without storing.
	SetErr error
	// GetErr, when non-nil, is returned by every Get.
	GetErr error
	// CloseErr, when non-nil, is returned by Close.
	CloseErr error
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(key string) ([]byte, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return bytes.Clone(v), nil
}

func (s *Store) Set(key string, value []byte) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.data[key] = bytes.Clone(value)
	return nil
}

func (s *Store) Close() error { return s.CloseErr }
