package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/mara-ellison/maras-boutique-api/utils"
)

// MockAssetStore is an in-memory AssetStore implementation for testing
type MockAssetStore struct {
	storedFiles map[string][]byte // map of URL to file content
	mu          sync.RWMutex

	// Failure injection for error-path tests
	StoreErr  error
	DeleteErr error
}

// NewMockAssetStore creates a new mock asset store
func NewMockAssetStore() *MockAssetStore {
	return &MockAssetStore{
		storedFiles: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global asset store instance for testing
func (m *MockAssetStore) SetAsMockForTesting() {
	SetAssetStore(m)
}

// Store simulates persisting an uploaded file
func (m *MockAssetStore) Store(fileHeader *multipart.FileHeader) (string, error) {
	if m.StoreErr != nil {
		return "", m.StoreErr
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	url := fmt.Sprintf("/uploads/%s", utils.UniqueAssetName(fileHeader.Filename))

	m.mu.Lock()
	m.storedFiles[url] = content
	m.mu.Unlock()

	return url, nil
}

// Delete simulates removing a stored asset
func (m *MockAssetStore) Delete(url string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	m.mu.Lock()
	delete(m.storedFiles, url)
	m.mu.Unlock()

	return nil
}

// FileExists checks if an asset exists in mock storage
func (m *MockAssetStore) FileExists(url string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.storedFiles[url]
	return exists
}

// StoredURLs returns the URLs of all stored assets (for testing assertions)
func (m *MockAssetStore) StoredURLs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	urls := make([]string, 0, len(m.storedFiles))
	for url := range m.storedFiles {
		urls = append(urls, url)
	}
	return urls
}

// Count returns the number of stored assets
func (m *MockAssetStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.storedFiles)
}

// Clear removes all assets from mock storage
func (m *MockAssetStore) Clear() {
	m.mu.Lock()
	m.storedFiles = make(map[string][]byte)
	m.mu.Unlock()
}
