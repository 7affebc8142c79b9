package forms

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shrimpsizemoose/gradehub/internal/models"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) CreateStudent(ctx context.Context, student models.Student) (*models.Student, error) {
	args := m.Called(student)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockBackend) UpdateStudent(ctx context.Context, student models.Student) (*models.Student, error) {
	args := m.Called(student)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockBackend) DeleteStudent(ctx context.Context, id int) error {
	return m.Called(id).Error(0)
}

func (m *MockBackend) CreateModule(ctx context.Context, module models.Module) (*models.Module, error) {
	args := m.Called(module)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Module), args.Error(1)
}

func (m *MockBackend) CreateGrade(ctx context.Context, grade models.NewGrade) (*models.Grade, error) {
	args := m.Called(grade)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Grade), args.Error(1)
}

func (m *MockBackend) UpdateGradeScore(ctx context.Context, id, score int) (*models.Grade, error) {
	args := m.Called(id, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Grade), args.Error(1)
}

func (m *MockBackend) DeleteGrade(ctx context.Context, id int) error {
	return m.Called(id).Error(0)
}

func (m *MockBackend) CreateRegistration(ctx context.Context, reg models.NewRegistration) (*models.Registration, error) {
	args := m.Called(reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Registration), args.Error(1)
}

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Refresh(ctx context.Context) error {
	return m.Called().Error(0)
}
