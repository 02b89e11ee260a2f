package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type QuestionType string

const (
	QuestionTypeMCQ       QuestionType = "mcq"
	QuestionTypeOutput    QuestionType = "output"
	QuestionTypeInterview QuestionType = "interview"
)

var ValidQuestionTypes = map[QuestionType]bool{
	QuestionTypeMCQ:       true,
	QuestionTypeOutput:    true,
	QuestionTypeInterview: true,
}

// ── Core Structs ───────────────────────────────────────

// Question is the persisted record shape shared by the three question
// collections. Which optional fields are populated depends on the
// collection: options/correct_answer for MCQ, output for output
// prediction, answer for interview. The pair (question, topicId) is
// unique per collection and is the deduplication key.
type Question struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	TopicID       string             `json:"topicId" bson:"topicId"`
	Question      string             `json:"question" bson:"question"`
	Options       []string           `json:"options,omitempty" bson:"options,omitempty"`
	CorrectAnswer *int               `json:"correct_answer,omitempty" bson:"correct_answer,omitempty"`
	Output        string             `json:"output,omitempty" bson:"output,omitempty"`
	Answer        string             `json:"answer,omitempty" bson:"answer,omitempty"`
	Explanation   string             `json:"explanation" bson:"explanation"`
}

// ── Request Types ─────────────────────────────────────

// QuestionInput is one element of a bulk submission, before a topicId
// is attached. Required fields depend on the question type.
type QuestionInput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
	Output        string   `json:"output,omitempty"`
	Answer        string   `json:"answer,omitempty"`
	Explanation   string   `json:"explanation"`
}

type IngestRequest struct {
	TopicID   string          `json:"topicId"`
	Questions []QuestionInput `json:"questions"`
}

// ── Response Types ────────────────────────────────────

type IngestResponse struct {
	Success      bool   `json:"success"`
	Saved        int    `json:"saved"`
	Duplicates   int    `json:"duplicates"`
	Total        int    `json:"total"`
	TestsCreated int    `json:"testsCreated"`
	Message      string `json:"message"`
}

type QuestionListResponse struct {
	Success bool       `json:"success"`
	Count   int        `json:"count"`
	Data    []Question `json:"data"`
}
