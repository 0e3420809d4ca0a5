package resultstore

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/contract"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetResultCache implements the StoreManager interface.
func (m *MockStoreManager) GetResultCache() contract.ResultCache {
	ret := m.Called()
	cache, _ := ret.Get(0).(contract.ResultCache)
	return cache
}

// GetRunStore implements the StoreManager interface.
func (m *MockStoreManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockResultCache is a mock implementation of ResultCache for testing.
type MockResultCache struct {
	mock.Mock
}

var _ contract.ResultCache = &MockResultCache{} // Compile-time check

// Get implements the ResultCache interface.
func (m *MockResultCache) Get(snapshotID, userID string) ([]byte, int64, error) {
	args := m.Called(snapshotID, userID)
	value, _ := args.Get(0).([]byte)
	return value, args.Get(1).(int64), args.Error(2)
}

// Set implements the ResultCache interface.
func (m *MockResultCache) Set(snapshotID, userID string, value []byte, timestamp int64) error {
	args := m.Called(snapshotID, userID, value, timestamp)
	return args.Error(0)
}

// GetStatus implements the ResultCache interface.
func (m *MockResultCache) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Clear implements the ResultCache interface.
func (m *MockResultCache) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the ResultCache interface.
func (m *MockResultCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, snapshotID, userID string, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, snapshotID, userID, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totalFiles int) error {
	args := m.Called(runID, endTime, totalFiles)
	return args.Error(0)
}

// RecordAssessment implements the RunStore interface.
func (m *MockRunStore) RecordAssessment(runID int64, assessment schema.FileAssessment) error {
	args := m.Called(runID, assessment)
	return args.Error(0)
}

// ListAssessments implements the RunStore interface.
func (m *MockRunStore) ListAssessments(limit int) ([]schema.FileAssessment, error) {
	args := m.Called(limit)
	files, _ := args.Get(0).([]schema.FileAssessment)
	return files, args.Error(1)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RunStatus), args.Error(1)
}

// Clear implements the RunStore interface.
func (m *MockRunStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
