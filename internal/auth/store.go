// Package auth holds the opaque session credentials and their on-disk store.
// The chat core only ever consumes the token string; everything here is the
// collaborator boundary around it.
package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Context carries the credentials of an authenticated session. The token is
// opaque: it is attached to outbound requests and never inspected.
type Context struct {
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
}

// Store persists a Context as a YAML file.
type Store struct {
	path string
}

// NewStore creates a store at the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file path backing the store.
func (s *Store) Path() string { return s.path }

// Load reads the stored credentials. A missing file means anonymous mode and
// returns (nil, nil).
func (s *Store) Load() (*Context, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var ctx Context
	if err := yaml.Unmarshal(raw, &ctx); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if ctx.Token == "" {
		return nil, nil
	}
	return &ctx, nil
}

// Save writes the credentials, creating parent directories as needed. The
// file is user-readable only.
func (s *Store) Save(ctx *Context) error {
	raw, err := yaml.Marshal(ctx)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Delete removes the stored credentials. Deleting a store that does not
// exist is not an error.
func (s *Store) Delete() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
