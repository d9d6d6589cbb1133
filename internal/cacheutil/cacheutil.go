// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/colpick/internal/log"
)

// DefaultMaxAge is how long a cached object stays fresh when no other age
// is configured.
const DefaultMaxAge = 24 * time.Hour

// Store keeps fetched remote documents on disk, keyed by their URI.
type Store struct {
	// Dir is the base directory. Entries live in per-namespace subdirectories.
	Dir string
	// MaxAge bounds how old an entry may be and still be served. Zero means
	// DefaultMaxAge.
	MaxAge time.Duration
}

// Dir resolves the base cache directory from COLPICK_CACHE_DIR, falling back
// to os.UserCacheDir()/colpick. Returns ("", false) if neither is usable.
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("COLPICK_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "colpick"), true
	}
	return "", false
}

// New returns a Store rooted at Dir(), or nil when no directory resolves.
func New(maxAge time.Duration) *Store {
	base, ok := Dir()
	if !ok {
		return nil
	}
	return &Store{Dir: base, MaxAge: maxAge}
}

func (s *Store) maxAge() time.Duration {
	if s.MaxAge <= 0 {
		return DefaultMaxAge
	}
	return s.MaxAge
}

func (s *Store) path(ns, uri string) string {
	return filepath.Join(s.Dir, ns, encodeKey(uri))
}

// Get returns the cached body of uri if present and fresh.
func (s *Store) Get(ns, uri string) ([]byte, bool) {
	if s == nil {
		return nil, false
	}
	p := s.path(ns, uri)
	info, err := os.Stat(p)
	if err != nil || time.Since(info.ModTime()) > s.maxAge() {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: uri=%s", uri)
	return b, true
}

// Put stores data for uri beneath ns, creating directories as needed.
func (s *Store) Put(ns, uri string, data []byte) error {
	if s == nil {
		return nil
	}
	dir := filepath.Join(s.Dir, ns)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(s.path(ns, uri), data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: uri=%s", uri)
	return nil
}

// Purge removes entries older than the store's max age.
func (s *Store) Purge() error {
	if s == nil {
		return nil
	}
	maxAge := s.maxAge()
	err := filepath.Walk(s.Dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil || info.IsDir() || time.Since(info.ModTime()) <= maxAge {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
		} else {
			log.Debugf("removed cache file %s", path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

func encodeKey(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}
