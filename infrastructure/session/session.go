// Package session keeps the single login session of the shop tool.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultTTL is the session lifetime when none is configured.
const DefaultTTL = 2 * time.Hour

const separator = "|"

// Store is a login session holder. Implementations fail closed: any doubt
// about the session means it is not valid.
type Store interface {
	Save(username string) error
	IsValid() bool
	Username() (string, bool)
	Delete() error
}

// FileStore keeps one session as "username|unix_seconds" in a single file.
type FileStore struct {
	path string
	ttl  time.Duration
	now  func() time.Time
}

var _ Store = (*FileStore)(nil)

// Option customizes a FileStore.
type Option func(*FileStore)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		s.now = now
	}
}

// NewFileStore returns a store writing to path. A non-positive ttl falls back
// to DefaultTTL.
func NewFileStore(path string, ttl time.Duration, opts ...Option) *FileStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &FileStore{path: path, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultPath is the session file location when none is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), ".session_3d_iego")
}

// Path returns the session file location.
func (s *FileStore) Path() string { return s.path }

// TTL returns the session lifetime.
func (s *FileStore) TTL() time.Duration { return s.ttl }

// Save writes a fresh session for username. The record is written to a
// temporary sibling and renamed over the target, so readers never observe a
// partial file.
func (s *FileStore) Save(username string) error {
	if err := CheckUsername(username); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("session: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	payload := username + separator + strconv.FormatInt(s.now().Unix(), 10)
	if _, err := tmp.WriteString(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("session: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("session: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("session: replace session file: %w", err)
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		slog.Debug("session file chmod failed", slog.String("path", s.path), slog.Any("err", err))
	}
	return nil
}

// IsValid reports whether a live session exists. Expired sessions are deleted;
// sessions past three quarters of their TTL are renewed in place.
func (s *FileStore) IsValid() bool {
	username, issuedAt, ok := s.read()
	if !ok {
		return false
	}

	age := s.now().Sub(issuedAt)
	if age >= s.ttl {
		if err := s.Delete(); err != nil {
			slog.Warn("delete expired session failed", slog.String("path", s.path), slog.Any("err", err))
		}
		return false
	}

	if age > s.ttl*3/4 {
		if err := s.Save(username); err != nil {
			slog.Warn("renew session failed", slog.String("path", s.path), slog.Any("err", err))
		}
	}
	return true
}

// Username returns the owner of a valid session.
func (s *FileStore) Username() (string, bool) {
	if !s.IsValid() {
		return "", false
	}
	username, _, ok := s.read()
	return username, ok
}

// Delete removes the session file. A missing file is not an error.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

func (s *FileStore) read() (username string, issuedAt time.Time, ok bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Debug("session read failed", slog.String("path", s.path), slog.Any("err", err))
		}
		return "", time.Time{}, false
	}
	username, ts, found := strings.Cut(strings.TrimSpace(string(data)), separator)
	if !found || username == "" {
		return "", time.Time{}, false
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", time.Time{}, false
	}
	return username, time.Unix(unix, 0), true
}

// CheckUsername reports whether username can be stored in the session file
// unchanged.
func CheckUsername(username string) error {
	if username == "" {
		return errors.New("session: username is required")
	}
	if strings.TrimSpace(username) != username {
		return errors.New("session: username must not start or end with spaces")
	}
	if strings.Contains(username, separator) {
		return fmt.Errorf("session: username must not contain %q", separator)
	}
	if strings.ContainsAny(username, "\r\n") {
		return errors.New("session: username must be a single line")
	}
	return nil
}
