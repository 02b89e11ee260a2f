package tests

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quizzy-dock/backend/internal/models"
)

// TestStore is the read/update surface for test documents.
type TestStore interface {
	GetTest(ctx context.Context, id primitive.ObjectID) (*models.Test, error)
	ListTests(ctx context.Context, subtopicID string, qType models.QuestionType) ([]models.Test, error)
	QuestionsByIDs(ctx context.Context, qType models.QuestionType, ids []primitive.ObjectID) ([]models.Question, error)
	UpdateSocial(ctx context.Context, id primitive.ObjectID, status models.SocialMediaStatus, content *models.SocialMediaContent) (*models.Test, error)
}

type Service struct {
	store TestStore
}

func NewService(store TestStore) *Service {
	return &Service{store: store}
}

// GetTest hydrates a test with its questions in the exact order stored
// in questionIds. References that no longer resolve are dropped rather
// than failing the read.
func (s *Service) GetTest(ctx context.Context, id primitive.ObjectID) (*models.HydratedTest, error) {
	test, err := s.store.GetTest(ctx, id)
	if err != nil {
		return nil, err
	}

	fetched, err := s.store.QuestionsByIDs(ctx, test.QuestionType, test.QuestionIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Question, len(fetched))
	for _, q := range fetched {
		byID[q.ID] = q
	}

	questions := make([]models.Question, 0, len(test.QuestionIDs))
	for _, qid := range test.QuestionIDs {
		if q, ok := byID[qid]; ok {
			questions = append(questions, q)
		}
	}

	return &models.HydratedTest{
		Test:          *test,
		Questions:     questions,
		QuestionCount: len(questions),
	}, nil
}

func (s *Service) ListTests(ctx context.Context, subtopicID string, qType models.QuestionType) ([]models.Test, error) {
	return s.store.ListTests(ctx, subtopicID, qType)
}

func (s *Service) UpdateSocial(ctx context.Context, id primitive.ObjectID, req models.UpdateSocialRequest) (*models.Test, error) {
	return s.store.UpdateSocial(ctx, id, req.Status, req.Content)
}
