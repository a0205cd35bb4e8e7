package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockContentStore is a mock implementation of ContentStore
type MockContentStore struct {
	mock.Mock
}

func (m *MockContentStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockContentStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockContentStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockArchiver is a mock implementation of Archiver
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Pack(ctx context.Context, entries []ArchiveEntry) ([]byte, error) {
	args := m.Called(ctx, entries)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}
