package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quizzy-dock/backend/internal/database"
	"github.com/quizzy-dock/backend/internal/models"
)

type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) questions(qType models.QuestionType) *mongo.Collection {
	return s.db.Collection(database.QuestionCollectionName(string(qType)))
}

// InsertQuestions bulk-inserts docs with unordered semantics: the
// server keeps attempting every document after a duplicate-key
// failure. Returns the successfully inserted documents in submission
// order plus the duplicate count. Any write error other than a
// uniqueness violation is fatal.
func (s *Store) InsertQuestions(ctx context.Context, qType models.QuestionType, docs []models.Question) ([]models.Question, int, error) {
	payload := make([]interface{}, len(docs))
	for i, d := range docs {
		payload[i] = d
	}

	_, err := s.questions(qType).InsertMany(ctx, payload, options.InsertMany().SetOrdered(false))
	if err == nil {
		return docs, 0, nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) {
		return nil, 0, fmt.Errorf("bulk insert: %w", err)
	}
	if bwe.WriteConcernError != nil {
		return nil, 0, fmt.Errorf("bulk insert write concern: %s", bwe.WriteConcernError.Message)
	}

	failed := make(map[int]bool, len(bwe.WriteErrors))
	for _, we := range bwe.WriteErrors {
		if !mongo.IsDuplicateKeyError(we.WriteError) {
			return nil, 0, fmt.Errorf("bulk insert: %w", we.WriteError)
		}
		failed[we.Index] = true
	}

	inserted := make([]models.Question, 0, len(docs)-len(failed))
	for i, d := range docs {
		if !failed[i] {
			inserted = append(inserted, d)
		}
	}
	return inserted, len(failed), nil
}

func (s *Store) ListQuestions(ctx context.Context, qType models.QuestionType, topicID string) ([]models.Question, error) {
	cursor, err := s.questions(qType).Find(ctx, bson.M{"topicId": topicID})
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return questions, nil
}

// NextSeqBlock atomically reserves n consecutive sequence numbers for
// (subtopicId, questionType) and returns the first. The counter upsert
// replaces a count-then-create pattern that could hand out the same
// "Part N" twice under concurrent submissions.
func (s *Store) NextSeqBlock(ctx context.Context, subtopicID string, qType models.QuestionType, n int) (int, error) {
	filter := bson.M{"subtopicId": subtopicID, "questionType": qType}
	update := bson.M{"$inc": bson.M{"seq": n}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter models.TestCounter
	err := s.db.Collection(database.CollTestCounters).FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("bump test counter: %w", err)
	}
	return counter.Seq - n + 1, nil
}

func (s *Store) InsertTests(ctx context.Context, tests []models.Test) error {
	payload := make([]interface{}, len(tests))
	for i, t := range tests {
		payload[i] = t
	}
	if _, err := s.db.Collection(database.CollTests).InsertMany(ctx, payload); err != nil {
		return fmt.Errorf("insert tests: %w", err)
	}
	return nil
}
