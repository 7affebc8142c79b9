package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shrimpsizemoose/gradehub/internal/models"
)

func (c *Client) ListStudents(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := c.List(ctx, Students, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) GetStudent(ctx context.Context, id int) (*models.Student, error) {
	var student models.Student
	if err := c.Get(ctx, Students, strconv.Itoa(id), &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) CreateStudent(ctx context.Context, student models.Student) (*models.Student, error) {
	var created models.Student
	if err := c.Create(ctx, Students, student, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStudent replaces the whole record.
func (c *Client) UpdateStudent(ctx context.Context, student models.Student) (*models.Student, error) {
	var updated models.Student
	if err := c.Update(ctx, Students, strconv.Itoa(student.ID), student, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteStudent(ctx context.Context, id int) error {
	return c.Delete(ctx, Students, strconv.Itoa(id))
}

func (c *Client) ListModules(ctx context.Context) ([]models.Module, error) {
	var modules []models.Module
	if err := c.List(ctx, Modules, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

func (c *Client) CreateModule(ctx context.Context, module models.Module) (*models.Module, error) {
	var created models.Module
	if err := c.Create(ctx, Modules, module, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ListGrades(ctx context.Context) ([]models.Grade, error) {
	var grades []models.Grade
	if err := c.List(ctx, Grades, &grades); err != nil {
		return nil, err
	}
	return grades, nil
}

func (c *Client) CreateGrade(ctx context.Context, grade models.NewGrade) (*models.Grade, error) {
	var created models.Grade
	if err := c.Create(ctx, Grades, grade, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateGradeScore(ctx context.Context, id, score int) (*models.Grade, error) {
	var updated models.Grade
	if err := c.Update(ctx, Grades, strconv.Itoa(id), models.ScoreUpdate{Score: score}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteGrade(ctx context.Context, id int) error {
	return c.Delete(ctx, Grades, strconv.Itoa(id))
}

func (c *Client) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	var registrations []models.Registration
	if err := c.List(ctx, Registrations, &registrations); err != nil {
		return nil, err
	}
	return registrations, nil
}

// ListStudentRegistrations hits /registrations/student/{id}.
func (c *Client) ListStudentRegistrations(ctx context.Context, studentID int) ([]models.Registration, error) {
	var registrations []models.Registration
	path := []string{Registrations.Name, "student", strconv.Itoa(studentID)}
	if err := c.do(ctx, Registrations, "list", http.MethodGet, path, nil, &registrations); err != nil {
		return nil, err
	}
	return registrations, nil
}

func (c *Client) CreateRegistration(ctx context.Context, reg models.NewRegistration) (*models.Registration, error) {
	var created models.Registration
	if err := c.Create(ctx, Registrations, reg, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
