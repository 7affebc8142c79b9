package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/shrimpsizemoose/gradehub/internal/api"
	"github.com/shrimpsizemoose/gradehub/internal/forms"
	"github.com/shrimpsizemoose/gradehub/internal/models"
	"github.com/shrimpsizemoose/gradehub/internal/views"
)

// Service owns one instance of every screen. Forms are opened per
// interaction and refresh the screen that lists what they change.
type Service struct {
	Config *Config
	Client *api.Client

	Dashboard     *views.Dashboard
	Grades        *views.Grades
	Students      *views.Students
	Modules       *views.Modules
	Registrations *views.Registrations
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return New(config)
}

func New(config *Config, opts ...api.Option) (*Service, error) {
	client, err := api.New(config.Client(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init api client: %w", err)
	}

	return &Service{
		Config:        config,
		Client:        client,
		Dashboard:     views.NewDashboard(client, config.DashboardOptions()),
		Grades:        views.NewGrades(client),
		Students:      views.NewStudents(client),
		Modules:       views.NewModules(client),
		Registrations: views.NewRegistrations(client),
	}, nil
}

// Screen looks a screen up by the name used in routes and CLI commands.
func (s *Service) Screen(name string) (views.Screen, bool) {
	switch name {
	case "dashboard":
		return s.Dashboard, true
	case "grades":
		return s.Grades, true
	case "students":
		return s.Students, true
	case "modules":
		return s.Modules, true
	case "registrations":
		return s.Registrations, true
	}
	return nil, false
}

// LoadAll loads every screen concurrently. Screen errors stay on the
// screens; the first one is also returned.
func (s *Service) LoadAll(ctx context.Context) error {
	var g errgroup.Group
	for _, screen := range []views.Screen{s.Dashboard, s.Grades, s.Students, s.Modules, s.Registrations} {
		g.Go(func() error {
			return screen.Load(ctx)
		})
	}
	return g.Wait()
}

func (s *Service) InspectStudent(id int) *views.StudentInspect {
	return views.NewStudentInspect(s.Client, id)
}

func (s *Service) AddGrade() *forms.Form[forms.GradeDraft] {
	return forms.NewGradeForm(s.Client, s.Grades, s.Config.FormOptions())
}

func (s *Service) AddStudent() *forms.Form[forms.StudentDraft] {
	return forms.NewStudentForm(s.Client, s.Students, s.Config.FormOptions())
}

func (s *Service) AddModule() *forms.Form[forms.ModuleDraft] {
	return forms.NewModuleForm(s.Client, s.Modules, s.Config.FormOptions())
}

func (s *Service) Register() *forms.Form[forms.RegistrationDraft] {
	return forms.NewRegistrationForm(s.Client, s.Registrations, s.Config.FormOptions())
}

func (s *Service) EditScore(grade models.Grade) *forms.Form[forms.ScoreEdit] {
	return forms.NewScoreEditForm(s.Client, s.Grades, grade, s.Config.FormOptions())
}

func (s *Service) EditStudent(student models.Student) *forms.Form[forms.StudentEdit] {
	return forms.NewStudentEditForm(s.Client, s.Students, student, s.Config.FormOptions())
}

func (s *Service) DeleteGrade(id int) *forms.Form[forms.DeleteTarget] {
	return forms.NewDeleteGradeDialog(s.Client, s.Grades, id, s.Config.FormOptions())
}

func (s *Service) DeleteStudent(id int) *forms.Form[forms.DeleteTarget] {
	return forms.NewDeleteStudentDialog(s.Client, s.Students, id, s.Config.FormOptions())
}
