package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/gradehub/internal/app"
)

func Routes(service *app.Service) *http.ServeMux {
	screens := NewScreenHandler(service)
	forms := NewFormHandler(service)

	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, Timed(pattern, h))
	}

	handle("GET /api/v1/dashboard", screens.HandleDashboard)
	handle("GET /api/v1/grades", screens.HandleGrades)
	handle("GET /api/v1/students", screens.HandleStudents)
	handle("GET /api/v1/students/{id}", screens.HandleStudent)
	handle("GET /api/v1/modules", screens.HandleModules)
	handle("GET /api/v1/registrations", screens.HandleRegistrations)

	handle("POST /api/v1/grades", forms.HandleAddGrade)
	handle("PUT /api/v1/grades/{id}", forms.HandleEditScore)
	handle("DELETE /api/v1/grades/{id}", forms.HandleDeleteGrade)
	handle("POST /api/v1/students", forms.HandleAddStudent)
	handle("PUT /api/v1/students/{id}", forms.HandleEditStudent)
	handle("DELETE /api/v1/students/{id}", forms.HandleDeleteStudent)
	handle("POST /api/v1/modules", forms.HandleAddModule)
	handle("POST /api/v1/registrations", forms.HandleRegister)

	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
