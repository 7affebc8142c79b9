package views

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shrimpsizemoose/gradehub/internal/models"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListStudents(ctx context.Context) ([]models.Student, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *MockBackend) GetStudent(ctx context.Context, id int) (*models.Student, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockBackend) ListModules(ctx context.Context) ([]models.Module, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Module), args.Error(1)
}

func (m *MockBackend) ListGrades(ctx context.Context) ([]models.Grade, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Grade), args.Error(1)
}

func (m *MockBackend) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Registration), args.Error(1)
}

func (m *MockBackend) ListStudentRegistrations(ctx context.Context, studentID int) ([]models.Registration, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Registration), args.Error(1)
}
