package mocks

import (
	"context"
	"io"

	"github.com/blog-api/internal/models"
)

// MockCategoryCache is an in-memory CategoryCache
type MockCategoryCache struct {
	Names         []string
	List          []*models.Category
	GetError      error
	Invalidations int
}

func NewMockCategoryCache() *MockCategoryCache {
	return &MockCategoryCache{}
}

func (m *MockCategoryCache) GetNames(ctx context.Context) ([]string, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Names, nil
}

func (m *MockCategoryCache) SetNames(ctx context.Context, names []string) error {
	m.Names = names
	return nil
}

func (m *MockCategoryCache) GetList(ctx context.Context) ([]*models.Category, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.List, nil
}

func (m *MockCategoryCache) SetList(ctx context.Context, categories []*models.Category) error {
	m.List = categories
	return nil
}

func (m *MockCategoryCache) Invalidate(ctx context.Context) error {
	m.Invalidations++
	m.Names = nil
	m.List = nil
	return nil
}

// MockImageStore records uploads instead of writing them
type MockImageStore struct {
	URL   string
	Error error
	Saved [][]byte
}

func NewMockImageStore(url string) *MockImageStore {
	return &MockImageStore{URL: url}
}

func (m *MockImageStore) SaveImage(ctx context.Context, r io.Reader) (string, error) {
	if m.Error != nil {
		return "", m.Error
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.Saved = append(m.Saved, data)
	return m.URL, nil
}
