package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. Question collections are per type because each
// carries its own (question, topicId) unique index.
const (
	CollSubjects           = "subjects"
	CollSubjectMetadata    = "subjectMetadata"
	CollMCQQuestions       = "mcqQuestions"
	CollOutputQuestions    = "outputQuestions"
	CollInterviewQuestions = "interviewQuestions"
	CollTests              = "tests"
	CollTestCounters       = "testCounters"
	CollUsers              = "users"
)

// QuestionCollectionName maps a question type to its collection.
func QuestionCollectionName(t string) string {
	switch t {
	case "mcq":
		return CollMCQQuestions
	case "output":
		return CollOutputQuestions
	case "interview":
		return CollInterviewQuestions
	}
	return ""
}

func Connect() (*mongo.Client, *mongo.Database, error) {
	uri := getEnv("MONGODB_URI", "mongodb://localhost:27017")
	dbName := getEnv("MONGODB_DB", "quizzydock")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the ingestion pipeline relies on.
// The unique compound index on (question, topicId) is what turns
// resubmitted questions into duplicate-key write errors instead of
// silent double inserts.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	dedupKey := mongo.IndexModel{
		Keys:    bson.D{{Key: "question", Value: 1}, {Key: "topicId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	topicKey := mongo.IndexModel{
		Keys: bson.D{{Key: "topicId", Value: 1}},
	}
	for _, coll := range []string{CollMCQQuestions, CollOutputQuestions, CollInterviewQuestions} {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, []mongo.IndexModel{dedupKey, topicKey}); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}

	uniqueName := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	if _, err := db.Collection(CollSubjects).Indexes().CreateOne(ctx, uniqueName("name")); err != nil {
		return fmt.Errorf("create index on %s: %w", CollSubjects, err)
	}
	if _, err := db.Collection(CollSubjectMetadata).Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniqueName("name"), uniqueName("shortName"),
	}); err != nil {
		return fmt.Errorf("create indexes on %s: %w", CollSubjectMetadata, err)
	}
	if _, err := db.Collection(CollUsers).Indexes().CreateOne(ctx, uniqueName("email")); err != nil {
		return fmt.Errorf("create index on %s: %w", CollUsers, err)
	}

	testKey := mongo.IndexModel{
		Keys: bson.D{{Key: "subtopicId", Value: 1}, {Key: "questionType", Value: 1}},
	}
	if _, err := db.Collection(CollTests).Indexes().CreateOne(ctx, testKey); err != nil {
		return fmt.Errorf("create index on %s: %w", CollTests, err)
	}

	counterKey := mongo.IndexModel{
		Keys:    bson.D{{Key: "subtopicId", Value: 1}, {Key: "questionType", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(CollTestCounters).Indexes().CreateOne(ctx, counterKey); err != nil {
		return fmt.Errorf("create index on %s: %w", CollTestCounters, err)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
