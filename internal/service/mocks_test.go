package service

import (
	"context"

	"test-extractor/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockResourceExtractor ---
type MockResourceExtractor struct {
	mock.Mock
}

func (m *MockResourceExtractor) Extract(ctx context.Context, inputPath, outputPath string) error {
	args := m.Called(ctx, inputPath, outputPath)
	return args.Error(0)
}

// --- MockSourceParser ---
type MockSourceParser struct {
	mock.Mock
}

func (m *MockSourceParser) Parse(path string) ([]domain.Question, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

// --- MockScriptBuilder ---
type MockScriptBuilder struct {
	mock.Mock
}

func (m *MockScriptBuilder) Build(tests []*domain.Test) (*domain.Script, error) {
	args := m.Called(tests)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Script), args.Error(1)
}

// --- MockMaterializer ---
type MockMaterializer struct {
	mock.Mock
}

func (m *MockMaterializer) Materialize(ctx context.Context, scriptPath, dbPath string) error {
	args := m.Called(ctx, scriptPath, dbPath)
	return args.Error(0)
}

// --- MockDatabaseVerifier ---
type MockDatabaseVerifier struct {
	mock.Mock
}

func (m *MockDatabaseVerifier) Verify(ctx context.Context, dbPath string, expected *domain.Script) error {
	args := m.Called(ctx, dbPath, expected)
	return args.Error(0)
}
