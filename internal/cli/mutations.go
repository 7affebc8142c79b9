package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/gradehub/internal/forms"
	"github.com/shrimpsizemoose/gradehub/internal/models"
)

func (c *CLI) handleStudent(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "student show <id>\nstudent add <first> <last> <username> <email>\n"+
		"student edit <id> [first|last|username|email <value>]...\nstudent delete <id>")
	if err != nil {
		return err
	}

	switch sub {
	case "show":
		return c.handleStudentShow(ctx, rest)
	case "add":
		return c.handleStudentAdd(ctx, rest)
	case "edit":
		return c.handleStudentEdit(ctx, rest)
	case "delete":
		return c.handleStudentDelete(ctx, rest)
	default:
		return fmt.Errorf("unknown subcommand: %s", sub)
	}
}

func (c *CLI) handleStudentAdd(ctx context.Context, args []string) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: student add <first> <last> <username> <email>")
	}

	form := c.service.AddStudent()
	form.Set(forms.StudentDraft{
		FirstName: args[0],
		LastName:  args[1],
		Username:  args[2],
		Email:     args[3],
	})
	if err := submit(ctx, form); err != nil {
		return err
	}

	c.print(fmt.Sprintf("✅ Student %s %s added", args[0], args[1]))
	return nil
}

func (c *CLI) handleStudentEdit(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: student edit <id> [first|last|username|email <value>]...")
	}
	id, err := parseID("student", args[0])
	if err != nil {
		return err
	}

	current, err := c.service.Client.GetStudent(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch student %d: %w", id, err)
	}

	form := c.service.EditStudent(*current)
	for i := 1; i < len(args); i += 2 {
		if i+1 >= len(args) {
			form.Close()
			return fmt.Errorf("missing value for %s", args[i])
		}

		field, value := args[i], args[i+1]
		var apply func(*forms.StudentEdit)
		switch field {
		case "first":
			apply = func(d *forms.StudentEdit) { d.FirstName = value }
		case "last":
			apply = func(d *forms.StudentEdit) { d.LastName = value }
		case "username":
			apply = func(d *forms.StudentEdit) { d.Username = value }
		case "email":
			apply = func(d *forms.StudentEdit) { d.Email = value }
		default:
			form.Close()
			return fmt.Errorf("unknown field: %s", field)
		}
		form.Edit(apply)
	}

	if err := submit(ctx, form); err != nil {
		return err
	}
	c.print(fmt.Sprintf("✅ Student #%d updated", id))
	return nil
}

func (c *CLI) handleStudentDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: student delete <id>")
	}
	id, err := parseID("student", args[0])
	if err != nil {
		return err
	}

	if err := submit(ctx, c.service.DeleteStudent(id)); err != nil {
		return err
	}
	c.print(fmt.Sprintf("🗑 Student #%d deleted", id))
	return nil
}

func (c *CLI) handleModule(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "module add <code> <name...> [mnc]")
	if err != nil {
		return err
	}
	if sub != "add" {
		return fmt.Errorf("unknown subcommand: %s", sub)
	}
	if len(rest) < 2 {
		return fmt.Errorf("usage: module add <code> <name...> [mnc]")
	}

	code, name := rest[0], rest[1:]
	mnc := false
	if len(name) > 1 && name[len(name)-1] == "mnc" {
		mnc = true
		name = name[:len(name)-1]
	}

	form := c.service.AddModule()
	form.Set(forms.ModuleDraft{Code: code, Name: strings.Join(name, " "), MNC: mnc})
	if err := submit(ctx, form); err != nil {
		return err
	}

	c.print(fmt.Sprintf("✅ Module %s added", code))
	return nil
}

func (c *CLI) handleGrade(ctx context.Context, args []string) error {
	sub, rest, err := subcommand(args, "grade add <student_id> <module> <score>\n"+
		"grade score <grade_id> <score>\ngrade delete <grade_id>")
	if err != nil {
		return err
	}

	switch sub {
	case "add":
		return c.handleGradeAdd(ctx, rest)
	case "score":
		return c.handleGradeScore(ctx, rest)
	case "delete":
		return c.handleGradeDelete(ctx, rest)
	default:
		return fmt.Errorf("unknown subcommand: %s", sub)
	}
}

func (c *CLI) handleGradeAdd(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: grade add <student_id> <module> <score>")
	}
	studentID, err := parseID("student", args[0])
	if err != nil {
		return err
	}
	score, err := parseScore(args[2])
	if err != nil {
		return err
	}

	form := c.service.AddGrade()
	form.Set(forms.GradeDraft{
		StudentID:  forms.Int(studentID),
		ModuleCode: args[1],
		Score:      forms.Int(score),
	})
	if err := submit(ctx, form); err != nil {
		return err
	}

	c.print(fmt.Sprintf("✅ Grade %d added for student #%d on %s", score, studentID, args[1]))
	return nil
}

func (c *CLI) handleGradeScore(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: grade score <grade_id> <score>")
	}
	id, err := parseID("grade", args[0])
	if err != nil {
		return err
	}
	score, err := parseScore(args[1])
	if err != nil {
		return err
	}

	grade, err := c.findGrade(ctx, id)
	if err != nil {
		return err
	}

	form := c.service.EditScore(grade)
	form.Edit(func(d *forms.ScoreEdit) { d.Score = forms.Int(score) })
	if err := submit(ctx, form); err != nil {
		return err
	}

	c.print(fmt.Sprintf("✅ Grade #%d: %d → %d", id, grade.Score, score))
	return nil
}

func (c *CLI) handleGradeDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: grade delete <grade_id>")
	}
	id, err := parseID("grade", args[0])
	if err != nil {
		return err
	}

	if err := submit(ctx, c.service.DeleteGrade(id)); err != nil {
		return err
	}
	c.print(fmt.Sprintf("🗑 Grade #%d deleted", id))
	return nil
}

func (c *CLI) handleRegister(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: register <student_id> <module>")
	}
	studentID, err := parseID("student", args[0])
	if err != nil {
		return err
	}

	form := c.service.Register()
	form.Set(forms.RegistrationDraft{StudentID: forms.Int(studentID), ModuleCode: args[1]})
	if err := submit(ctx, form); err != nil {
		return err
	}

	c.print(fmt.Sprintf("✅ Student #%d registered on %s", studentID, args[1]))
	return nil
}

// findGrade looks the grade up in a fresh grades snapshot; the backend has
// no single-grade endpoint.
func (c *CLI) findGrade(ctx context.Context, id int) (models.Grade, error) {
	if err := c.service.Grades.Load(ctx); err != nil {
		return models.Grade{}, fmt.Errorf("failed to load grades: %w", err)
	}
	for _, g := range c.service.Grades.State().Grades {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Grade{}, fmt.Errorf("grade #%d not found", id)
}
