package ingest

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/quizzy-dock/backend/internal/models"
)

// Catalog resolves subtopic ids to their display location.
type Catalog interface {
	ResolveSubtopic(ctx context.Context, subtopicID string) (*models.SubtopicRef, error)
}

// QuestionStore is the persistence surface the pipeline needs. The
// bulk insert is unordered: every document is attempted even after a
// uniqueness violation, and the result reports which inputs were
// rejected as duplicates.
type QuestionStore interface {
	InsertQuestions(ctx context.Context, qType models.QuestionType, docs []models.Question) (inserted []models.Question, duplicates int, err error)
	ListQuestions(ctx context.Context, qType models.QuestionType, topicID string) ([]models.Question, error)
	NextSeqBlock(ctx context.Context, subtopicID string, qType models.QuestionType, n int) (first int, err error)
	InsertTests(ctx context.Context, tests []models.Test) error
}

type Service struct {
	store   QuestionStore
	catalog Catalog
}

func NewService(store QuestionStore, catalog Catalog) *Service {
	return &Service{store: store, catalog: catalog}
}

// Ingest accepts a validated bulk submission for one question type:
// it persists the new questions, skips duplicates, and materializes
// full groups of newly inserted questions into tests. Test creation is
// best effort; a failure there never rolls back the questions.
func (s *Service) Ingest(ctx context.Context, spec TypeSpec, req models.IngestRequest) (*models.IngestResponse, error) {
	ref, err := s.catalog.ResolveSubtopic(ctx, req.TopicID)
	if err != nil {
		return nil, err
	}

	docs := make([]models.Question, len(req.Questions))
	for i, q := range req.Questions {
		docs[i] = models.Question{
			ID:            primitive.NewObjectID(),
			TopicID:       req.TopicID,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Output:        q.Output,
			Answer:        q.Answer,
			Explanation:   q.Explanation,
		}
	}

	inserted, duplicates, err := s.store.InsertQuestions(ctx, spec.Type, docs)
	if err != nil {
		return nil, fmt.Errorf("insert questions: %w", err)
	}

	testsCreated := 0
	if len(inserted) >= BatchThreshold {
		testsCreated, err = s.createTests(ctx, spec, ref, inserted)
		if err != nil {
			// Questions are the valuable artifact; grouping them into
			// tests can be redone later, so the request still succeeds.
			log.Printf("[ingest] test creation failed for subtopic %s (%s): %v", req.TopicID, spec.Type, err)
			testsCreated = 0
		}
	}

	resp := &models.IngestResponse{
		Success:      true,
		Saved:        len(inserted),
		Duplicates:   duplicates,
		Total:        len(req.Questions),
		TestsCreated: testsCreated,
	}
	resp.Message = fmt.Sprintf("Saved %d of %d questions (%d duplicates skipped), created %d tests",
		resp.Saved, resp.Total, resp.Duplicates, resp.TestsCreated)
	return resp, nil
}

func (s *Service) createTests(ctx context.Context, spec TypeSpec, ref *models.SubtopicRef, inserted []models.Question) (int, error) {
	ids := make([]primitive.ObjectID, len(inserted))
	for i, q := range inserted {
		ids[i] = q.ID
	}

	groups := chunkIDs(ids, BatchSize, spec.KeepPartialBatch)
	if len(groups) == 0 {
		return 0, nil
	}

	first, err := s.store.NextSeqBlock(ctx, ref.SubtopicID, spec.Type, len(groups))
	if err != nil {
		return 0, fmt.Errorf("reserve sequence block: %w", err)
	}

	tests := make([]models.Test, len(groups))
	for i, group := range groups {
		tests[i] = models.Test{
			ID:                primitive.NewObjectID(),
			SubjectName:       ref.SubjectName,
			TopicName:         ref.TopicName,
			SubtopicName:      ref.SubtopicName,
			SubtopicID:        ref.SubtopicID,
			QuestionType:      spec.Type,
			TestName:          fmt.Sprintf("Part %d", first+i),
			QuestionIDs:       group,
			SocialMediaStatus: models.SocialUnpublished,
		}
	}

	if err := s.store.InsertTests(ctx, tests); err != nil {
		return 0, fmt.Errorf("insert tests: %w", err)
	}
	return len(tests), nil
}

func (s *Service) ListQuestions(ctx context.Context, qType models.QuestionType, topicID string) ([]models.Question, error) {
	return s.store.ListQuestions(ctx, qType, topicID)
}

// chunkIDs splits ids into consecutive groups of size, preserving
// order. A trailing group smaller than size is kept or dropped per the
// type's partial-batch policy.
func chunkIDs(ids []primitive.ObjectID, size int, keepPartial bool) [][]primitive.ObjectID {
	var groups [][]primitive.ObjectID
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			if !keepPartial {
				break
			}
			end = len(ids)
		}
		groups = append(groups, ids[start:end])
	}
	return groups
}
