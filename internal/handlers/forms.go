package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/gradehub/internal/app"
	"github.com/shrimpsizemoose/gradehub/internal/forms"
	"github.com/shrimpsizemoose/gradehub/internal/models"
)

// FormHandler turns write requests into form submissions. Each request
// gets its own form so concurrent requests never share a draft.
type FormHandler struct {
	service *app.Service
}

func NewFormHandler(service *app.Service) *FormHandler {
	return &FormHandler{
		service: service,
	}
}

func (h *FormHandler) HandleAddGrade(w http.ResponseWriter, r *http.Request) {
	submitDecoded(w, r, h.service.AddGrade())
}

func (h *FormHandler) HandleAddStudent(w http.ResponseWriter, r *http.Request) {
	submitDecoded(w, r, h.service.AddStudent())
}

func (h *FormHandler) HandleAddModule(w http.ResponseWriter, r *http.Request) {
	submitDecoded(w, r, h.service.AddModule())
}

func (h *FormHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	submitDecoded(w, r, h.service.Register())
}

func (h *FormHandler) HandleEditScore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch struct {
		Score *int `json:"score"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	form := h.service.EditScore(models.Grade{ID: id})
	form.Edit(func(d *forms.ScoreEdit) { d.Score = patch.Score })
	submit(w, r, form)
}

func (h *FormHandler) HandleEditStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var draft forms.StudentDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	form := h.service.EditStudent(models.Student{ID: id})
	form.Edit(func(d *forms.StudentEdit) { d.StudentDraft = draft })
	submit(w, r, form)
}

func (h *FormHandler) HandleDeleteGrade(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	submit(w, r, h.service.DeleteGrade(id))
}

func (h *FormHandler) HandleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	submit(w, r, h.service.DeleteStudent(id))
}

func submitDecoded[D any](w http.ResponseWriter, r *http.Request, form *forms.Form[D]) {
	var draft D
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		form.Close()
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	form.Set(draft)
	submit(w, r, form)
}

// submit runs the form to completion even if the client disconnects.
func submit[D any](w http.ResponseWriter, r *http.Request, form *forms.Form[D]) {
	defer form.Close()

	err := form.Submit(context.WithoutCancel(r.Context()))
	if err != nil {
		logger.Debug.Printf("%s: %v", form.Name(), err)
	}
	writeJSON(w, submitStatus(err), formResponse[D]{Form: form.Name(), State: form.State()})
}
