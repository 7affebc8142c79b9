package handlers

import (
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/app"
	"github.com/shrimpsizemoose/gradehub/internal/views"
)

// ScreenHandler renders screen snapshots. Every GET refreshes the screen
// first, the same way opening a page re-fetches it.
type ScreenHandler struct {
	service *app.Service
}

func NewScreenHandler(service *app.Service) *ScreenHandler {
	return &ScreenHandler{
		service: service,
	}
}

func (h *ScreenHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	// never fails, degraded collections come back empty
	h.service.Dashboard.Refresh(r.Context())
	st := h.service.Dashboard.State()
	writeJSON(w, http.StatusOK, screenResponse{State: st})
}

// HandleGrades filters per request; the shared screen keeps its own filter.
func (h *ScreenHandler) HandleGrades(w http.ResponseWriter, r *http.Request) {
	h.refresh(r, "grades", h.service.Grades)
	st := h.service.Grades.State().WithModuleFilter(r.URL.Query().Get("module"))
	writeJSON(w, loadStatus(st.Status), screenResponse{State: st, Error: st.Message()})
}

func (h *ScreenHandler) HandleStudents(w http.ResponseWriter, r *http.Request) {
	h.refresh(r, "students", h.service.Students)
	st := h.service.Students.State()
	writeJSON(w, loadStatus(st.Status), screenResponse{State: st, Error: st.Message()})
}

func (h *ScreenHandler) HandleModules(w http.ResponseWriter, r *http.Request) {
	h.refresh(r, "modules", h.service.Modules)
	st := h.service.Modules.State()
	writeJSON(w, loadStatus(st.Status), screenResponse{State: st, Error: st.Message()})
}

func (h *ScreenHandler) HandleRegistrations(w http.ResponseWriter, r *http.Request) {
	h.refresh(r, "registrations", h.service.Registrations)
	st := h.service.Registrations.State()
	writeJSON(w, loadStatus(st.Status), screenResponse{State: st, Error: st.Message()})
}

func (h *ScreenHandler) HandleStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	screen := h.service.InspectStudent(id)
	h.refresh(r, "student", screen)
	st := screen.State()
	writeJSON(w, loadStatus(st.Status), screenResponse{State: st, Error: st.Message()})
}

func (h *ScreenHandler) refresh(r *http.Request, name string, screen views.Screen) {
	if err := screen.Refresh(r.Context()); err != nil {
		logger.Error.Printf("Failed to load %s: %v", name, err)
	}
}

func loadStatus(st views.Status) int {
	if st.Err != nil {
		return http.StatusBadGateway
	}
	return http.StatusOK
}
