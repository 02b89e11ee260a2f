package ingest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quizzy-dock/backend/internal/catalog"
	"github.com/quizzy-dock/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func questionType(r *http.Request) (TypeSpec, bool) {
	return SpecFor(models.QuestionType(mux.Vars(r)["type"]))
}

// Submit handles POST /questions/{type}: validate everything up front,
// then hand the batch to the pipeline. Validation failures reject the
// whole submission before any write.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	spec, ok := questionType(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question type must be 'mcq', 'output', or 'interview'"})
		return
	}

	var req models.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := ValidateRequest(spec, req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.service.Ingest(r.Context(), spec, req)
	if err == catalog.ErrSubtopicNotFound {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Invalid topicId"})
		return
	}
	if err != nil {
		log.Printf("[ingest] Submit error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save questions"})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	spec, ok := questionType(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question type must be 'mcq', 'output', or 'interview'"})
		return
	}

	topicID := r.URL.Query().Get("topicId")
	if topicID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "topicId query parameter is required"})
		return
	}

	questions, err := h.service.ListQuestions(r.Context(), spec.Type, topicID)
	if err != nil {
		log.Printf("[ingest] List error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list questions"})
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}

	writeJSON(w, http.StatusOK, models.QuestionListResponse{Success: true, Count: len(questions), Data: questions})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
