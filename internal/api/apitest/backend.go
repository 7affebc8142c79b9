// Package apitest runs an in-memory stand-in for the grades backend so that
// the client, screens and forms can be tested end to end.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/shrimpsizemoose/gradehub/internal/models"
)

type failure struct {
	status  int
	message string
}

type Backend struct {
	mu            sync.Mutex
	students      []models.Student
	modules       []models.Module
	grades        []models.Grade
	registrations []models.Registration
	nextID        int

	failures map[string]failure
	calls    map[string]int

	server *httptest.Server
}

// New starts the backend; it is shut down when the test finishes.
func New(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{
		nextID:   1,
		failures: make(map[string]failure),
		calls:    make(map[string]int),
	}

	mux := http.NewServeMux()
	b.handle(mux, "GET /students", b.listStudents)
	b.handle(mux, "GET /students/{id}", b.getStudent)
	b.handle(mux, "POST /students", b.createStudent)
	b.handle(mux, "PUT /students/{id}", b.updateStudent)
	b.handle(mux, "DELETE /students/{id}", b.deleteStudent)
	b.handle(mux, "GET /modules", b.listModules)
	b.handle(mux, "POST /modules/add", b.createModule)
	b.handle(mux, "GET /grades", b.listGrades)
	b.handle(mux, "POST /grades/addGrade", b.createGrade)
	b.handle(mux, "PUT /grades/{id}", b.updateGrade)
	b.handle(mux, "DELETE /grades/{id}", b.deleteGrade)
	b.handle(mux, "GET /registrations", b.listRegistrations)
	b.handle(mux, "GET /registrations/student/{id}", b.studentRegistrations)
	b.handle(mux, "POST /registrations", b.createRegistration)

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *Backend) URL() string {
	return b.server.URL
}

// Fail makes route (e.g. "GET /grades") answer with status and an optional
// JSON message. A zero status drops the connection instead.
func (b *Backend) Fail(route string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = failure{status: status, message: message}
}

func (b *Backend) Recover(route string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, route)
}

func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for _, n := range b.calls {
		total += n
	}
	return total
}

func (b *Backend) SeedStudents(students ...models.Student) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range students {
		if s.ID == 0 {
			s.ID = b.id()
		}
		b.reserve(s.ID)
		b.students = append(b.students, s)
	}
}

func (b *Backend) SeedModules(modules ...models.Module) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.modules = append(b.modules, modules...)
}

func (b *Backend) SeedGrades(grades ...models.Grade) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, g := range grades {
		if g.ID == 0 {
			g.ID = b.id()
		}
		b.reserve(g.ID)
		b.grades = append(b.grades, g)
	}
}

func (b *Backend) SeedRegistrations(registrations ...models.Registration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range registrations {
		if r.ID == 0 {
			r.ID = b.id()
		}
		b.reserve(r.ID)
		b.registrations = append(b.registrations, r)
	}
}

func (b *Backend) Grades() []models.Grade {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Grade(nil), b.grades...)
}

func (b *Backend) Students() []models.Student {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Student(nil), b.students...)
}

// reserve keeps generated ids clear of seeded ones. Called with mu held.
func (b *Backend) reserve(id int) {
	if id >= b.nextID {
		b.nextID = id + 1
	}
}

// id must be called with mu held.
func (b *Backend) id() int {
	id := b.nextID
	b.nextID++
	return id
}

func (b *Backend) handle(mux *http.ServeMux, route string, fn http.HandlerFunc) {
	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls[route]++
		f, failing := b.failures[route]
		b.mu.Unlock()

		if !failing {
			fn(w, r)
			return
		}
		if f.status == 0 {
			if hj, ok := w.(http.Hijacker); ok {
				if conn, _, err := hj.Hijack(); err == nil {
					conn.Close()
					return
				}
			}
			f.status = http.StatusBadGateway
		}
		if f.message == "" {
			w.WriteHeader(f.status)
			return
		}
		writeJSON(w, f.status, map[string]string{"message": f.message})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func (b *Backend) listStudents(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]models.Student{}, b.students...))
}

func (b *Backend) getStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.students {
		if s.ID == id {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (b *Backend) createStudent(w http.ResponseWriter, r *http.Request) {
	var s models.Student
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s.ID = b.id()
	b.students = append(b.students, s)
	writeJSON(w, http.StatusCreated, s)
}

func (b *Backend) updateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var s models.Student
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.students {
		if b.students[i].ID == id {
			s.ID = id
			b.students[i] = s
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (b *Backend) deleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.students {
		if b.students[i].ID == id {
			b.students = append(b.students[:i], b.students[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (b *Backend) listModules(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]models.Module{}, b.modules...))
}

func (b *Backend) createModule(w http.ResponseWriter, r *http.Request) {
	var m models.Module
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil || m.Code == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.module(m.Code); ok {
		w.WriteHeader(http.StatusConflict)
		return
	}
	b.modules = append(b.modules, m)
	writeJSON(w, http.StatusCreated, m)
}

func (b *Backend) listGrades(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]models.Grade{}, b.grades...))
}

func (b *Backend) createGrade(w http.ResponseWriter, r *http.Request) {
	var req models.NewGrade
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	student, ok := b.student(req.StudentID)
	if !ok {
		writeError(w, http.StatusNotFound, "Student not found")
		return
	}
	module, ok := b.module(req.ModuleCode)
	if !ok {
		writeError(w, http.StatusNotFound, "Module not found")
		return
	}
	if !b.registered(student.ID, module.Code) {
		writeError(w, http.StatusBadRequest, "Student must be registered for this module before receiving a grade")
		return
	}

	g := models.Grade{ID: b.id(), Score: req.Score, Student: student, Module: module}
	b.grades = append(b.grades, g)
	writeJSON(w, http.StatusOK, g)
}

func (b *Backend) updateGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req models.ScoreUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Score < models.MinScore || req.Score > models.MaxScore {
		writeError(w, http.StatusBadRequest, "Score must be between 0 and 100")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.grades {
		if b.grades[i].ID == id {
			b.grades[i].Score = req.Score
			writeJSON(w, http.StatusOK, b.grades[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "Grade not found")
}

func (b *Backend) deleteGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.grades {
		if b.grades[i].ID == id {
			b.grades = append(b.grades[:i], b.grades[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "Grade not found")
}

func (b *Backend) listRegistrations(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, append([]models.Registration{}, b.registrations...))
}

func (b *Backend) studentRegistrations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.student(id); !ok {
		writeError(w, http.StatusNotFound, "Student not found")
		return
	}
	out := []models.Registration{}
	for _, reg := range b.registrations {
		if reg.Student.ID == id {
			out = append(out, reg)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createRegistration(w http.ResponseWriter, r *http.Request) {
	var req models.NewRegistration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	student, ok := b.student(req.StudentID)
	if !ok {
		writeError(w, http.StatusNotFound, "Student not found")
		return
	}
	module, ok := b.module(req.ModuleCode)
	if !ok {
		writeError(w, http.StatusNotFound, "Module not found")
		return
	}
	if b.registered(student.ID, module.Code) {
		writeError(w, http.StatusConflict, "Student is already registered for this module")
		return
	}

	reg := models.Registration{ID: b.id(), Student: student, Module: module}
	b.registrations = append(b.registrations, reg)
	writeJSON(w, http.StatusCreated, reg)
}

func (b *Backend) student(id int) (models.Student, bool) {
	for _, s := range b.students {
		if s.ID == id {
			return s, true
		}
	}
	return models.Student{}, false
}

func (b *Backend) module(code string) (models.Module, bool) {
	for _, m := range b.modules {
		if m.Code == code {
			return m, true
		}
	}
	return models.Module{}, false
}

func (b *Backend) registered(studentID int, code string) bool {
	for _, reg := range b.registrations {
		if reg.Student.ID == studentID && reg.Module.Code == code {
			return true
		}
	}
	return false
}
