package catalog

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

// ErrSubtopicNotFound is returned when a subtopic id does not resolve
// anywhere in the catalog.
var ErrSubtopicNotFound = errors.New("subtopic not found")

type Store struct {
	subjects *mongo.Collection
	metadata *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		subjects: db.Collection(database.CollSubjects),
		metadata: db.Collection(database.CollSubjectMetadata),
	}
}

func (s *Store) GetSubjectByName(ctx context.Context, name string) (*models.Subject, error) {
	var subject models.Subject
	err := s.subjects.FindOne(ctx, bson.M{"name": name}).Decode(&subject)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	return &subject, nil
}

func (s *Store) SaveSubject(ctx context.Context, subject *models.Subject) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.subjects.ReplaceOne(ctx, bson.M{"name": subject.Name}, subject, opts); err != nil {
		return fmt.Errorf("save subject: %w", err)
	}
	return nil
}

func (s *Store) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	cursor, err := s.subjects.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer cursor.Close(ctx)

	var subjects []models.Subject
	if err := cursor.All(ctx, &subjects); err != nil {
		return nil, fmt.Errorf("decode subjects: %w", err)
	}
	return subjects, nil
}

// ResolveSubtopic finds the subject owning the given subtopic id and
// walks its hierarchy to produce the display triple.
func (s *Store) ResolveSubtopic(ctx context.Context, subtopicID string) (*models.SubtopicRef, error) {
	var subject models.Subject
	err := s.subjects.FindOne(ctx, bson.M{"topics.subtopics.id": subtopicID}).Decode(&subject)
	if err == mongo.ErrNoDocuments {
		return nil, ErrSubtopicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve subtopic: %w", err)
	}

	for _, topic := range subject.Topics {
		for _, sub := range topic.Subtopics {
			if sub.ID == subtopicID {
				return &models.SubtopicRef{
					SubjectName:  subject.Name,
					TopicName:    topic.Name,
					SubtopicName: sub.Name,
					SubtopicID:   sub.ID,
				}, nil
			}
		}
	}
	return nil, ErrSubtopicNotFound
}

// ── Subject Metadata ────────────────────────────────────

func (s *Store) GetMetadataByName(ctx context.Context, name string) (*models.SubjectMetadata, error) {
	var meta models.SubjectMetadata
	err := s.metadata.FindOne(ctx, bson.M{"name": name}).Decode(&meta)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get metadata: %w", err)
	}
	return &meta, nil
}

// NextOrder returns max(order)+1 across all metadata records, starting
// at 1 for an empty catalog.
func (s *Store) NextOrder(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})
	var top models.SubjectMetadata
	err := s.metadata.FindOne(ctx, bson.M{}, opts).Decode(&top)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("next order: %w", err)
	}
	return top.Order + 1, nil
}

func (s *Store) SaveMetadata(ctx context.Context, meta *models.SubjectMetadata) error {
	update := bson.M{"$set": bson.M{
		"shortName": meta.ShortName,
		"questions": meta.Questions,
		"order":     meta.Order,
		"status":    meta.Status,
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := s.metadata.UpdateOne(ctx, bson.M{"name": meta.Name}, update, opts); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	return nil
}

func (s *Store) ListMetadata(ctx context.Context) ([]models.SubjectMetadata, error) {
	cursor, err := s.metadata.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list metadata: %w", err)
	}
	defer cursor.Close(ctx)

	var metas []models.SubjectMetadata
	if err := cursor.All(ctx, &metas); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return metas, nil
}
