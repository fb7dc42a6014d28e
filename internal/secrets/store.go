// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package secrets stores the completion API key. The OS keyring is the
// default backend; a permission-restricted YAML file serves headless hosts
// without a keyring daemon, and an in-memory store serves tests and
// ephemeral runs.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"better-naming/internal/config"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// ServiceName is the keyring service the key is filed under.
const ServiceName = "better-naming"

// APIKeyName is the fixed key the completion API credential is stored under.
const APIKeyName = "OPENAI_API_KEY"

// ErrNotFound is returned when a key is not present in the store.
var ErrNotFound = errors.New("secret not found")

// KeyringStore keeps secrets in the OS keyring (Secret Service, macOS
// Keychain or Windows Credential Manager).
type KeyringStore struct {
	service string
}

func NewKeyringStore(service string) *KeyringStore {
	return &KeyringStore{service: service}
}

func (s *KeyringStore) Get(key string) (string, error) {
	v, err := keyring.Get(s.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("keyring get %s: %w", key, err)
	}
	return v, nil
}

func (s *KeyringStore) Store(key, value string) error {
	if err := keyring.Set(s.service, key, value); err != nil {
		return fmt.Errorf("keyring set %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *KeyringStore) Delete(key string) error {
	err := keyring.Delete(s.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete %s: %w", key, err)
	}
	return nil
}

// FileStore keeps secrets in a YAML map on disk, readable only by the owner.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFilePath returns secrets.yaml inside the config directory.
func DefaultFilePath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "secrets.yaml"), nil
}

// filePath returns cfg.SecretsFile with "~/" expanded, or the default path.
func filePath(cfg config.Config) (string, error) {
	if cfg.SecretsFile == "" {
		return DefaultFilePath()
	}
	return config.ResolvePath(cfg.SecretsFile)
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read secrets file %s: %w", s.path, err)
	}
	m := map[string]string{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse secrets file %s: %w", s.path, err)
	}
	return m, nil
}

func (s *FileStore) save(m map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create secrets directory: %w", err)
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal secrets: %w", err)
	}
	tmp := s.path + ".tmp"
	// rw------- (0600)
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write secrets file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace secrets file %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *FileStore) Store(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = value
	return s.save(m)
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return s.save(m)
}

// MemoryStore is a process-local store.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Store(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// Store is the secret store contract shared by every backend. It matches
// host.SecretStore.
type Store interface {
	Get(key string) (string, error)
	Store(key, value string) error
	Delete(key string) error
}

// Open returns the backend selected by cfg.SecretBackend.
func Open(cfg config.Config) (Store, error) {
	switch cfg.SecretBackend {
	case config.SecretBackendKeyring, "":
		return NewKeyringStore(ServiceName), nil
	case config.SecretBackendFile:
		path, err := filePath(cfg)
		if err != nil {
			return nil, err
		}
		return NewFileStore(path), nil
	case config.SecretBackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown secret backend %q", cfg.SecretBackend)
}
