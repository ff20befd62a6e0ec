package upload

import (
	"context"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"
)

type mockRecordStore struct {
	mock.Mock
}

func (m *mockRecordStore) Insert(ctx context.Context, rec *Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockRecordStore) RemoveByTicketAndOwner(ctx context.Context, ticket string, ownerID int) (string, error) {
	args := m.Called(ctx, ticket, ownerID)
	return args.String(0), args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *mockStorage) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// fakeRecordStore is an in-memory RecordStore whose remove is atomic under a
// mutex, mirroring the database's DELETE ... RETURNING semantics.
type fakeRecordStore struct {
	mu   sync.Mutex
	rows map[string]*Record // keyed by deletion ticket
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{rows: make(map[string]*Record)}
}

func (f *fakeRecordStore) Insert(ctx context.Context, rec *Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[rec.DeletionID] = rec
	return nil
}

func (f *fakeRecordStore) RemoveByTicketAndOwner(ctx context.Context, ticket string, ownerID int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.rows[ticket]
	if !ok || rec.OwnerID != ownerID {
		return "", ErrNotFound
	}
	delete(f.rows, ticket)
	return rec.Filename, nil
}

func (f *fakeRecordStore) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// fakeStorage records saved keys in memory.
type fakeStorage struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{keys: make(map[string]bool)}
}

func (f *fakeStorage) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[key] = true
	return nil
}

func (f *fakeStorage) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, key)
	return nil
}

func (f *fakeStorage) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.keys[key]
}
