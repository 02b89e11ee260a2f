package tests

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quizzy-dock/backend/internal/models"
)

// SocialGenerator produces marketing copy for a test. Wired to the
// promo package in production, faked in tests.
type SocialGenerator interface {
	GenerateContent(ctx context.Context, test *models.HydratedTest) (*models.SocialMediaContent, error)
}

type Handler struct {
	service   *Service
	generator SocialGenerator
}

func NewHandler(service *Service, generator SocialGenerator) *Handler {
	return &Handler{service: service, generator: generator}
}

func testID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["testId"])
	return id, err == nil
}

func (h *Handler) GetTest(w http.ResponseWriter, r *http.Request) {
	id, ok := testID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid test ID"})
		return
	}

	hydrated, err := h.service.GetTest(r.Context(), id)
	if err == ErrTestNotFound {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Test not found"})
		return
	}
	if err != nil {
		log.Printf("[tests] GetTest error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch test"})
		return
	}

	writeJSON(w, http.StatusOK, models.TestResponse{Success: true, Data: *hydrated})
}

func (h *Handler) ListTests(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	subtopicID := query.Get("subtopicId")

	qType := models.QuestionType(query.Get("questionType"))
	if qType != "" && !models.ValidQuestionTypes[qType] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "questionType must be 'mcq', 'output', or 'interview'"})
		return
	}

	result, err := h.service.ListTests(r.Context(), subtopicID, qType)
	if err != nil {
		log.Printf("[tests] ListTests error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list tests"})
		return
	}
	if result == nil {
		result = []models.Test{}
	}

	writeJSON(w, http.StatusOK, models.TestListResponse{Success: true, Count: len(result), Data: result})
}

func (h *Handler) UpdateSocial(w http.ResponseWriter, r *http.Request) {
	id, ok := testID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid test ID"})
		return
	}

	var req models.UpdateSocialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Status != models.SocialPublished && req.Status != models.SocialUnpublished {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "status must be 'published' or 'unpublished'"})
		return
	}

	test, err := h.service.UpdateSocial(r.Context(), id, req)
	if err == ErrTestNotFound {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Test not found"})
		return
	}
	if err != nil {
		log.Printf("[tests] UpdateSocial error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update test"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": test})
}

func (h *Handler) GenerateSocial(w http.ResponseWriter, r *http.Request) {
	id, ok := testID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid test ID"})
		return
	}

	hydrated, err := h.service.GetTest(r.Context(), id)
	if err == ErrTestNotFound {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Test not found"})
		return
	}
	if err != nil {
		log.Printf("[tests] GenerateSocial error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch test"})
		return
	}

	content, err := h.generator.GenerateContent(r.Context(), hydrated)
	if err != nil {
		log.Printf("[tests] GenerateSocial generation error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Content generation failed: " + err.Error()})
		return
	}

	test, err := h.service.UpdateSocial(r.Context(), id, models.UpdateSocialRequest{
		Status:  models.SocialUnpublished,
		Content: content,
	})
	if err != nil {
		log.Printf("[tests] GenerateSocial save error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save generated content"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "data": test})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
