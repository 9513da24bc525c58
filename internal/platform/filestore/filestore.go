// Package filestore provides avatar/file storage for the clinic service.
// It defines the FileStore interface and an in-memory implementation
// suitable for testing and development.
package filestore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrMissingKey    = errors.New("file key is required")
	ErrInvalidUpload = errors.New("upload is not a valid base64 data URL")
)

// FileStore is the file-storage collaborator. Writes are keyed by path-like
// strings such as "avatars/{pin}".
type FileStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// AvatarKey returns the storage key for a user's avatar.
func AvatarKey(pin string) string {
	return "avatars/" + pin
}

var dataURLPattern = regexp.MustCompile(`^data:([A-Za-z-+/]+);base64,(.+)$`)

// Upload is a decoded client file upload.
type Upload struct {
	ContentType string
	Data        []byte
}

// ParseDataURL decodes a "data:<type>;base64,<payload>" string as submitted
// by browser file inputs.
func ParseDataURL(s string) (*Upload, error) {
	matches := dataURLPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return nil, ErrInvalidUpload
	}

	contentType := matches[1]
	if !strings.Contains(contentType, "/") {
		return nil, ErrInvalidUpload
	}

	data, err := base64.StdEncoding.DecodeString(matches[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUpload, err)
	}

	return &Upload{ContentType: contentType, Data: data}, nil
}

// InMemoryStore is a thread-safe, in-memory FileStore for testing/dev.
type InMemoryStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewInMemoryStore returns a ready-to-use InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		files: make(map[string][]byte),
	}
}

func (s *InMemoryStore) Put(_ context.Context, key string, data []byte) error {
	if key == "" {
		return ErrMissingKey
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.files[key] = buf
	s.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.files[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrFileNotFound
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[key]; !ok {
		return ErrFileNotFound
	}
	delete(s.files, key)
	return nil
}
