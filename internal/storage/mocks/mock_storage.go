package mocks

import (
	"context"
	"io"

	"sharebox/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, name string, r io.Reader, opt storage.PutOptions) (storage.FileInfo, error) {
	args := m.Called(ctx, name, r, opt)
	return args.Get(0).(storage.FileInfo), args.Error(1)
}

func (m *MockStorage) Get(ctx context.Context, name string) (io.ReadCloser, storage.FileInfo, error) {
	args := m.Called(ctx, name)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.FileInfo), args.Error(2)
}

func (m *MockStorage) List(ctx context.Context) ([]storage.FileInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.FileInfo), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
