package tests

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quizzy-dock/backend/internal/database"
	"github.com/quizzy-dock/backend/internal/models"
)

// ErrTestNotFound is returned when a test id does not resolve.
var ErrTestNotFound = errors.New("test not found")

type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) GetTest(ctx context.Context, id primitive.ObjectID) (*models.Test, error) {
	var test models.Test
	err := s.db.Collection(database.CollTests).FindOne(ctx, bson.M{"_id": id}).Decode(&test)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get test: %w", err)
	}
	return &test, nil
}

func (s *Store) ListTests(ctx context.Context, subtopicID string, qType models.QuestionType) ([]models.Test, error) {
	filter := bson.M{}
	if subtopicID != "" {
		filter["subtopicId"] = subtopicID
	}
	if qType != "" {
		filter["questionType"] = qType
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.db.Collection(database.CollTests).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	defer cursor.Close(ctx)

	var result []models.Test
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode tests: %w", err)
	}
	return result, nil
}

// QuestionsByIDs fetches the referenced questions from the collection
// for qType. The store's natural order is whatever the server returns;
// callers reassemble presentation order themselves.
func (s *Store) QuestionsByIDs(ctx context.Context, qType models.QuestionType, ids []primitive.ObjectID) ([]models.Question, error) {
	coll := s.db.Collection(database.QuestionCollectionName(string(qType)))
	cursor, err := coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return questions, nil
}

func (s *Store) UpdateSocial(ctx context.Context, id primitive.ObjectID, status models.SocialMediaStatus, content *models.SocialMediaContent) (*models.Test, error) {
	set := bson.M{"socialMediaStatus": status}
	if content != nil {
		set["socialMediaContent"] = content
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var test models.Test
	err := s.db.Collection(database.CollTests).FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&test)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update social status: %w", err)
	}
	return &test, nil
}
