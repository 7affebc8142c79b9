package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/gradehub/internal/api"
	"github.com/shrimpsizemoose/gradehub/internal/models"
	"github.com/shrimpsizemoose/gradehub/internal/scoring"
)

func (c *CLI) handleDashboard(ctx context.Context, args []string) error {
	dash := c.service.Dashboard
	dash.Load(ctx)
	st := dash.State()

	var msg strings.Builder
	msg.WriteString("📊 Dashboard\n")
	msg.WriteString(fmt.Sprintf("Students: %d  Modules: %d  Grades: %d\n", st.StudentCount, st.ModuleCount, st.GradeCount))
	msg.WriteString(fmt.Sprintf("Average score: %.1f\n", st.Average))

	msg.WriteString("\n🏆 Top performers\n")
	if len(st.TopPerformers) == 0 {
		msg.WriteString("No grades yet\n")
	}
	for i, p := range st.TopPerformers {
		msg.WriteString(fmt.Sprintf("%d. [%s] %s %.1f (%d grades, %s)\n",
			i+1,
			p.Student.Initials(),
			p.Student.FullName(),
			p.Average,
			p.Grades,
			scoring.BandFor(p.Average),
		))
	}

	msg.WriteString("\n🕑 Recent activity\n")
	if len(st.RecentActivity) == 0 {
		msg.WriteString("No grades yet\n")
	}
	for _, g := range st.RecentActivity {
		msg.WriteString(gradeLine(g))
	}

	c.print(strings.TrimRight(msg.String(), "\n"))
	return nil
}

func (c *CLI) handleGrades(ctx context.Context, args []string) error {
	screen := c.service.Grades
	if len(args) > 0 {
		screen.SetModuleFilter(args[0])
	}
	if err := screen.Load(ctx); err != nil {
		return fmt.Errorf("failed to load grades: %w", err)
	}
	st := screen.State()

	var msg strings.Builder
	title := "all modules"
	if st.ModuleFilter != "" {
		title = st.ModuleFilter
	}
	msg.WriteString(fmt.Sprintf("Grades for %s (average %.1f):\n", title, st.Average))
	if len(st.Filtered) == 0 {
		msg.WriteString("No grades found\n")
	}
	for _, g := range st.Filtered {
		msg.WriteString(gradeLine(g))
	}

	c.print(strings.TrimRight(msg.String(), "\n"))
	return nil
}

func (c *CLI) handleStudents(ctx context.Context, args []string) error {
	screen := c.service.Students
	if err := screen.Load(ctx); err != nil {
		return fmt.Errorf("failed to load students: %w", err)
	}

	var msg strings.Builder
	msg.WriteString("Students:\n")
	for _, s := range screen.State().Students {
		msg.WriteString(fmt.Sprintf("#%d %s %s <%s>\n", s.ID, pad(s.FullName(), 20), pad(s.Username, 12), s.Email))
	}

	c.print(strings.TrimRight(msg.String(), "\n"))
	return nil
}

func (c *CLI) handleStudentShow(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: student show <id>")
	}
	id, err := parseID("student", args[0])
	if err != nil {
		return err
	}

	screen := c.service.InspectStudent(id)
	if err := screen.Load(ctx); err != nil {
		if api.IsNotFound(err) {
			return fmt.Errorf("student #%d not found", id)
		}
		return fmt.Errorf("failed to load student %d: %w", id, err)
	}
	st := screen.State()

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("👤 %s (%s) <%s>\n", st.Student.FullName(), st.Student.Username, st.Student.Email))
	msg.WriteString(fmt.Sprintf("Average: %.1f (%s)\n", st.Average, scoring.BandFor(st.Average)))
	msg.WriteString("\nRegistered on:\n")
	for _, r := range st.Registrations {
		msg.WriteString(fmt.Sprintf("📝 %s %s\n", r.Module.Code, r.Module.Name))
	}
	msg.WriteString("\nGrades:\n")
	if len(st.Grades) == 0 {
		msg.WriteString("No grades yet\n")
	}
	for _, g := range st.Grades {
		msg.WriteString(fmt.Sprintf("#%d %s %d\n", g.ID, pad(g.Module.Code, 8), g.Score))
	}

	c.print(strings.TrimRight(msg.String(), "\n"))
	return nil
}

func (c *CLI) handleModules(ctx context.Context, args []string) error {
	screen := c.service.Modules
	if err := screen.Load(ctx); err != nil {
		return fmt.Errorf("failed to load modules: %w", err)
	}

	var msg strings.Builder
	msg.WriteString("Modules:\n")
	for _, m := range screen.State().Modules {
		mnc := ""
		if m.MNC {
			mnc = " (mandatory)"
		}
		msg.WriteString(fmt.Sprintf("%s %s%s\n", pad(m.Code, 8), m.Name, mnc))
	}

	c.print(strings.TrimRight(msg.String(), "\n"))
	return nil
}

func (c *CLI) handleRegistrations(ctx context.Context, args []string) error {
	screen := c.service.Registrations
	if err := screen.Load(ctx); err != nil {
		return fmt.Errorf("failed to load registrations: %w", err)
	}

	var msg strings.Builder
	msg.WriteString("Registrations:\n")
	for _, r := range screen.State().Registrations {
		msg.WriteString(fmt.Sprintf("#%d %s %s\n", r.ID, pad(r.Student.FullName(), 20), r.Module.Code))
	}

	c.print(strings.TrimRight(msg.String(), "\n"))
	return nil
}

func gradeLine(g models.Grade) string {
	return fmt.Sprintf("#%d %s %s %d\n", g.ID, pad(g.Student.FullName(), 20), pad(g.Module.Code, 8), g.Score)
}
