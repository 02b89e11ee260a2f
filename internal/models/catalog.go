package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ── Subject Catalog ────────────────────────────────────

// Subtopic is a leaf of the Subject → Topic → Subtopic hierarchy. Its
// ID is generated once at creation and never changes; it is the join
// key for questions and tests.
type Subtopic struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

type Topic struct {
	Name      string     `json:"name" bson:"name"`
	Subtopics []Subtopic `json:"subtopics" bson:"subtopics"`
}

type Subject struct {
	ID     primitive.ObjectID `json:"id" bson:"_id"`
	Name   string             `json:"name" bson:"name"`
	Topics []Topic            `json:"topics" bson:"topics"`
}

type SubjectStatus string

const (
	SubjectActive   SubjectStatus = "active"
	SubjectInactive SubjectStatus = "inactive"
)

// SubjectMetadata drives the public catalog listing: display counts,
// URL slugs and ordering. Upserted whenever a subject is submitted.
type SubjectMetadata struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	ShortName string             `json:"shortName" bson:"shortName"`
	Questions string             `json:"questions" bson:"questions"`
	Order     int                `json:"order" bson:"order"`
	Status    SubjectStatus      `json:"status" bson:"status"`
}

// SubtopicRef is the resolved display location of a subtopic id.
type SubtopicRef struct {
	SubjectName  string
	TopicName    string
	SubtopicName string
	SubtopicID   string
}

// ── Request/Response Types ────────────────────────────

type TopicInput struct {
	Name      string   `json:"name"`
	Subtopics []string `json:"subtopics"`
}

type UpsertSubjectRequest struct {
	Name      string       `json:"name"`
	Questions string       `json:"questions,omitempty"`
	Topics    []TopicInput `json:"topics"`
}

type SubjectResponse struct {
	Success bool    `json:"success"`
	Data    Subject `json:"data"`
}

type SubjectListResponse struct {
	Success bool      `json:"success"`
	Count   int       `json:"count"`
	Data    []Subject `json:"data"`
}

type SubjectMetaListResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    []SubjectMetadata `json:"data"`
}
