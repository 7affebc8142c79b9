package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/app"
	"github.com/shrimpsizemoose/gradehub/internal/forms"
)

const usage = `Available commands:
dashboard - Show counts, average, top performers and recent activity
grades [module] - List grades, optionally for one module
students - List students
student show <id> - Show a student's grades and registrations
student add <first> <last> <username> <email> - Add a student
student edit <id> [first|last|username|email <value>]... - Update a student
student delete <id> - Delete a student
modules - List modules
module add <code> <name...> [mnc] - Add a module, "mnc" marks it mandatory
grade add <student_id> <module> <score> - Add a grade
grade score <grade_id> <score> - Change a grade's score
grade delete <grade_id> - Delete a grade
registrations - List registrations
register <student_id> <module> - Register a student on a module
help - Show this message

Examples:
grades CS101
grade add 3 CS101 85
module add PH100 Intro to Physics mnc
student edit 2 last Stone email bob.stone@example.com`

type commandHandler func(ctx context.Context, args []string) error

type CLI struct {
	service *app.Service
	out     io.Writer
}

func New(service *app.Service, out io.Writer) *CLI {
	return &CLI{
		service: service,
		out:     out,
	}
}

func (c *CLI) route(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"dashboard":     c.handleDashboard,
		"grades":        c.handleGrades,
		"students":      c.handleStudents,
		"student":       c.handleStudent,
		"modules":       c.handleModules,
		"module":        c.handleModule,
		"grade":         c.handleGrade,
		"registrations": c.handleRegistrations,
		"register":      c.handleRegister,
		"help":          c.handleHelp,
	}
	handler, found := commands[cmd]
	return handler, found
}

// Run executes one command line, e.g. ["grade", "add", "3", "CS101", "85"].
func (c *CLI) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.handleHelp(ctx, nil)
	}

	handler, ok := c.route(args[0])
	if !ok {
		c.print(usage)
		return fmt.Errorf("unknown command: %s", args[0])
	}
	return handler(ctx, args[1:])
}

func (c *CLI) handleHelp(ctx context.Context, args []string) error {
	c.print(usage)
	return nil
}

func (c *CLI) print(text string) {
	fmt.Fprintln(c.out, text)
}

// submit runs a form and turns a failure into the message the form shows.
func submit[D any](ctx context.Context, form *forms.Form[D]) error {
	defer form.Close()
	if err := form.Submit(ctx); err != nil {
		logger.Debug.Printf("%s: %v", form.Name(), err)
		return errors.New(form.State().Message)
	}
	return nil
}

func parseID(what, s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %s", what, s)
	}
	return id, nil
}

func parseScore(s string) (int, error) {
	score, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid score: %s", s)
	}
	return score, nil
}

func subcommand(args []string, help string) (string, []string, error) {
	if len(args) < 1 {
		return "", nil, fmt.Errorf("usage:\n%s", help)
	}
	return args[0], args[1:], nil
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
