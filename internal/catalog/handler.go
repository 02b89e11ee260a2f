package catalog

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/quizzy-dock/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) UpsertSubject(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := ValidateUpsert(req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	subject, err := h.service.UpsertSubject(r.Context(), req)
	if err != nil {
		log.Printf("[catalog] UpsertSubject error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save subject"})
		return
	}

	writeJSON(w, http.StatusCreated, models.SubjectResponse{Success: true, Data: *subject})
}

func (h *Handler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.service.ListSubjects(r.Context())
	if err != nil {
		log.Printf("[catalog] ListSubjects error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list subjects"})
		return
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	writeJSON(w, http.StatusOK, models.SubjectListResponse{Success: true, Count: len(subjects), Data: subjects})
}

func (h *Handler) ListMetadata(w http.ResponseWriter, r *http.Request) {
	metas, err := h.service.ListMetadata(r.Context())
	if err != nil {
		log.Printf("[catalog] ListMetadata error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list subject metadata"})
		return
	}
	if metas == nil {
		metas = []models.SubjectMetadata{}
	}
	writeJSON(w, http.StatusOK, models.SubjectMetaListResponse{Success: true, Count: len(metas), Data: metas})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
