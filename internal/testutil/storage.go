package testutil

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"foodgram/internal/utils/storage"
)

// FakeStorage is an in-memory image store.
type FakeStorage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Deleted []string
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{Objects: make(map[string][]byte)}
}

func (s *FakeStorage) UploadFile(_ context.Context, filename string, data []byte, folder string, allowed ...string) (string, error) {
	contentType := http.DetectContentType(data)
	if len(allowed) > 0 && !slices.Contains(allowed, contentType) {
		return "", fmt.Errorf("%w: %s", storage.ErrFileTypeNotAllowed, contentType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := folder + "/" + filename
	s.Objects[key] = data
	return key, nil
}

func (s *FakeStorage) DeleteFile(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, objectKey)
	s.Deleted = append(s.Deleted, objectKey)
	return nil
}

func (s *FakeStorage) GetPublicLinkKey(objectKey string) string {
	if objectKey == "" {
		return ""
	}
	return "http://files.test/" + objectKey
}
